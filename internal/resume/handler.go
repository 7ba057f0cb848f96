package resume

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/shared/server/respond"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires Resume view routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches Resume view routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/resume", h.mount)
	g := r.Group("/resume/:id")
	g.GET("", h.show)
	g.POST("/upload", h.upload)
	g.POST("/upload-file", h.uploadFile)
	g.POST("/feedback/:resumeID", h.feedback)
	g.POST("/generate", h.generate)
}

func (h *Handler) mount(c *gin.Context) {
	web.Tag(c, web.ViewResume, "", "mount")
	id, err := h.Svc.Mount(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "mount_failed", "failed to open resume view", nil)
		return
	}
	web.Mounted(c, web.ViewResume, id)
}

func (h *Handler) show(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewResume, id, "render")
	st, err := h.Svc.Render(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "resume.html", web.NewPage(web.ViewResume, "Resume", id, st.Alert, st.PageData()))
}

func (h *Handler) upload(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewResume, id, "upload")
	if _, err := h.Svc.Upload(c.Request.Context(), id, c.PostForm("text")); err != nil {
		h.fail(c, err)
		return
	}
	respond.SeeOther(c, web.ActionPath(web.ViewResume, id))
}

func (h *Handler) uploadFile(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewResume, id, "upload_file")
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, err := h.Svc.UploadFile(c.Request.Context(), id, data, contentType, fileHeader.Filename); err != nil {
		h.fail(c, err)
		return
	}
	respond.SeeOther(c, web.ActionPath(web.ViewResume, id))
}

func (h *Handler) feedback(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewResume, id, "feedback")
	resumeID, err := strconv.Atoi(c.Param("resumeID"))
	if err != nil || resumeID <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid resume id", nil)
		return
	}
	if _, err := h.Svc.ShowFeedback(c.Request.Context(), id, resumeID); err != nil {
		h.fail(c, err)
		return
	}
	respond.SeeOther(c, web.ActionPath(web.ViewResume, id)+"#feedback")
}

func (h *Handler) generate(c *gin.Context) {
	id := c.Param("id")
	web.Tag(c, web.ViewResume, id, "generate")
	var form GenerateForm
	if err := c.ShouldBind(&form); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid form", nil)
		return
	}
	if _, err := h.Svc.Generate(c.Request.Context(), id, form); err != nil {
		h.fail(c, err)
		return
	}
	respond.SeeOther(c, web.ActionPath(web.ViewResume, id))
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, viewstate.ErrNotFound) {
		web.Remount(c, web.ViewResume)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "view_state_error", "failed to update resume view", nil)
}
