package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "API_BASE_URL", "API_TIMEOUT", "JOBPREP_USER_ID", "EXPORT_ARCHIVE", "EXPORT_SURFACE_ERRORS", "VIEW_STATE_TTL"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected api base url %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 0 {
		t.Fatalf("expected no api timeout by default, got %s", cfg.APITimeout)
	}
	if cfg.UserID != 1 || cfg.ExportUserID != 1 {
		t.Fatalf("expected user ids 1, got %d/%d", cfg.UserID, cfg.ExportUserID)
	}
	if cfg.ObjectStoreType != "none" {
		t.Fatalf("expected archive none, got %q", cfg.ObjectStoreType)
	}
	if !cfg.ExportSurfaceErrors {
		t.Fatalf("expected export errors surfaced by default")
	}
	if cfg.ViewStateTTL != 2*time.Hour {
		t.Fatalf("unexpected view state ttl %s", cfg.ViewStateTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("API_TIMEOUT", "15s")
	t.Setenv("JOBPREP_USER_ID", "42")
	t.Setenv("EXPORT_ARCHIVE", "S3")
	t.Setenv("EXPORT_SURFACE_ERRORS", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.APITimeout)
	}
	if cfg.UserID != 42 {
		t.Fatalf("unexpected user id %d", cfg.UserID)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("unexpected store type %q", cfg.ObjectStoreType)
	}
	if cfg.ExportSurfaceErrors {
		t.Fatalf("expected export errors silenced")
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\n# comment\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	os.Unsetenv("PORT")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port from .env, got %q", cfg.Port)
	}
}
