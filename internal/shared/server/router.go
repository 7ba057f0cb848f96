package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/dashboard"
	"jobprep-web/internal/export"
	"jobprep-web/internal/interview"
	"jobprep-web/internal/resume"
	"jobprep-web/internal/shared/config"
	"jobprep-web/internal/shared/metrics"
	"jobprep-web/internal/shared/server/middleware"
	"jobprep-web/internal/shared/server/respond"
	"jobprep-web/internal/web"
)

// RouterDeps holds the view handlers mounted by NewRouter.
type RouterDeps struct {
	Config           config.Config
	ResumeHandler    *resume.Handler
	InterviewHandler *interview.Handler
	DashboardHandler *dashboard.Handler
	ExportHandler    *export.Handler
	RateLimiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"ACTION": {Rate: deps.Config.RateLimitRate, Burst: deps.Config.RateLimitBurst},
			},
			GroupFor: middleware.ActionGroup,
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, web.DefaultPath)
	})
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(r)
	}
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.RegisterRoutes(r)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(r)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(r)
	}

	// Unknown paths land on the default view.
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
			return
		}
		c.Redirect(http.StatusFound, web.DefaultPath)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
