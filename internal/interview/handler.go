package interview

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/shared/server/respond"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

// Handler wires Interview view routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches Interview view routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/interview", h.mount)
	g := r.Group("/interview/:id")
	g.GET("", h.show)
	g.POST("/questions", h.generate)
	g.POST("/questions/:index/answer", h.answer)
	g.POST("/questions/:index/save", h.save)
	g.POST("/questions/:index/evaluate", h.evaluate)
}

func (h *Handler) mount(c *gin.Context) {
	web.Tag(c, web.ViewInterview, "", "mount")
	id, err := h.Svc.Mount(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "mount_failed", "failed to open interview view", nil)
		return
	}
	web.Mounted(c, web.ViewInterview, id)
}

func (h *Handler) show(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewInterview, id, "render")
	st, err := h.Svc.Render(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "interview.html", web.NewPage(web.ViewInterview, "Interview", id, st.Alert, st.PageData()))
}

func (h *Handler) generate(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewInterview, id, "generate_questions")
	if _, err := h.Svc.Generate(c.Request.Context(), id, c.PostForm("company"), c.PostForm("role")); err != nil {
		h.fail(c, err)
		return
	}
	respond.SeeOther(c, web.ActionPath(web.ViewInterview, id))
}

type questionAction func(svc *Service, c *gin.Context, id string, index int, text string) (State, error)

func (h *Handler) answer(c *gin.Context) {
	h.onQuestion(c, "edit_answer", func(svc *Service, c *gin.Context, id string, index int, text string) (State, error) {
		return svc.SetAnswer(c.Request.Context(), id, index, text)
	})
}

func (h *Handler) save(c *gin.Context) {
	h.onQuestion(c, "save_answer", func(svc *Service, c *gin.Context, id string, index int, text string) (State, error) {
		return svc.Save(c.Request.Context(), id, index, text)
	})
}

func (h *Handler) evaluate(c *gin.Context) {
	h.onQuestion(c, "evaluate_answer", func(svc *Service, c *gin.Context, id string, index int, text string) (State, error) {
		return svc.Evaluate(c.Request.Context(), id, index, text)
	})
}

func (h *Handler) onQuestion(c *gin.Context, action string, run questionAction) {
	id := c.Param("id")
	web.Tag(c, web.ViewInterview, id, action)
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid question index", nil)
		return
	}
	if _, err := run(h.Svc, c, id, index, c.PostForm("answer")); err != nil {
		h.fail(c, err)
		return
	}
	respond.SeeOther(c, web.ActionPath(web.ViewInterview, id)+"#q"+strconv.Itoa(index))
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, viewstate.ErrNotFound):
		web.Remount(c, web.ViewInterview)
	case errors.Is(err, ErrQuestionNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "question not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "view_state_error", "failed to update interview view", nil)
	}
}
