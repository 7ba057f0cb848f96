package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/shared/server/respond"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

// Handler wires Dashboard view routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches Dashboard view routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/dashboard", h.mount)
	r.GET("/dashboard/:id", h.show)
}

func (h *Handler) mount(c *gin.Context) {
	web.Tag(c, web.ViewDashboard, "", "mount")
	id, err := h.Svc.Mount(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "mount_failed", "failed to open dashboard view", nil)
		return
	}
	web.Mounted(c, web.ViewDashboard, id)
}

func (h *Handler) show(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewDashboard, id, "render")
	st, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, viewstate.ErrNotFound) {
			web.Remount(c, web.ViewDashboard)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "view_state_error", "failed to load dashboard view", nil)
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", web.NewPage(web.ViewDashboard, "Dashboard", id, nil, st))
}
