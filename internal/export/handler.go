package export

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/shared/server/respond"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

// Handler wires Export view routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches Export view routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/export", h.mount)
	r.GET("/export/:id", h.show)
	r.POST("/export/:id/:format", h.export)
}

func (h *Handler) mount(c *gin.Context) {
	web.Tag(c, web.ViewExport, "", "mount")
	id, err := h.Svc.Mount(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "mount_failed", "failed to open export view", nil)
		return
	}
	web.Mounted(c, web.ViewExport, id)
}

func (h *Handler) show(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewExport, id, "render")
	st, err := h.Svc.Render(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, viewstate.ErrNotFound) {
			web.Remount(c, web.ViewExport)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "view_state_error", "failed to load export view", nil)
		return
	}
	c.HTML(http.StatusOK, "export.html", web.NewPage(web.ViewExport, "Export", id, st.Alert, st.PageData()))
}

func (h *Handler) export(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewExport, id, "export_"+c.Param("format"))
	format, err := apiclient.ParseFormat(c.Param("format"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "format must be docx or pdf", nil)
		return
	}

	file, err := h.Svc.Export(c.Request.Context(), id, format)
	switch {
	case err == nil:
		respond.Attachment(c, file.Filename, file.ContentType, file.Data)
	case errors.Is(err, viewstate.ErrNotFound):
		web.Remount(c, web.ViewExport)
	case errors.Is(err, ErrBusy):
		respond.Error(c, http.StatusConflict, "export_in_progress", err.Error(), nil)
	default:
		respond.SeeOther(c, web.ActionPath(web.ViewExport, id))
	}
}
