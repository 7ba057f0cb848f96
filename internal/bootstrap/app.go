// Package bootstrap wires configuration into the running web client.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/dashboard"
	"jobprep-web/internal/export"
	"jobprep-web/internal/interview"
	"jobprep-web/internal/resume"
	"jobprep-web/internal/shared/config"
	"jobprep-web/internal/shared/server"
	"jobprep-web/internal/shared/server/middleware"
	"jobprep-web/internal/shared/storage/db"
	"jobprep-web/internal/shared/storage/object"
	localstore "jobprep-web/internal/shared/storage/object/local"
	s3store "jobprep-web/internal/shared/storage/object/s3"
	"jobprep-web/internal/shared/telemetry"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Repo    viewstate.Repo
	API     *apiclient.Client
	Archive object.Archive

	ResumeService    *resume.Service
	InterviewService *interview.Service
	DashboardService *dashboard.Service
	ExportService    *export.Service
}

// Build prepares dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	var repo viewstate.Repo
	if sqlDB != nil {
		repo = &viewstate.PGRepo{DB: sqlDB}
	} else {
		repo = viewstate.NewMemoryRepo()
	}

	var opts []apiclient.Option
	if cfg.APITimeout > 0 {
		opts = append(opts, apiclient.WithTimeout(cfg.APITimeout))
	}
	api := apiclient.New(cfg.APIBaseURL, opts...)

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Repo:    repo,
		API:     api,
		Archive: archive,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		ResumeHandler:    resume.NewHandler(app.ResumeService),
		InterviewHandler: interview.NewHandler(app.InterviewService),
		DashboardHandler: dashboard.NewHandler(app.DashboardService),
		ExportHandler:    export.NewHandler(app.ExportService),
		RateLimiter:      middleware.NewRateLimiter(time.Now),
	})

	return app, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildServices(app *App) {
	cfg := app.Config
	app.ResumeService = resume.NewService(
		viewstate.NewStore[resume.State](web.ViewResume, app.Repo), app.API, cfg.UserID)
	app.InterviewService = interview.NewService(
		viewstate.NewStore[interview.State](web.ViewInterview, app.Repo), app.API, cfg.UserID)
	app.DashboardService = dashboard.NewService(
		viewstate.NewStore[dashboard.State](web.ViewDashboard, app.Repo), app.API, cfg.UserID)

	exportSvc := export.NewService(
		viewstate.NewStore[export.State](web.ViewExport, app.Repo), app.API, cfg.ExportUserID)
	exportSvc.Archive = app.Archive
	exportSvc.SurfaceErrors = cfg.ExportSurfaceErrors
	app.ExportService = exportSvc
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.view_state_memory", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Err("bootstrap.db_fallback", err, map[string]any{"reason": "connect failed"})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		if isDevLike(cfg.Env) {
			telemetry.Err("bootstrap.db_fallback", err, map[string]any{"reason": "migrations failed"})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildArchive(ctx context.Context, cfg config.Config) (object.Archive, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
