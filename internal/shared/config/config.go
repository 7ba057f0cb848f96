package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port                string
	Env                 string
	APIBaseURL          string
	APITimeout          time.Duration
	UserID              int
	ExportUserID        int
	CORSAllowOrigin     []string
	DatabaseURL         string
	ViewStateTTL        time.Duration
	ViewStateSweep      time.Duration
	ObjectStoreType     string
	LocalStoreDir       string
	AWSRegion           string
	S3Bucket            string
	S3Prefix            string
	SSEKMSKeyID         string
	ExportSurfaceErrors bool
	RateLimitRate       float64
	RateLimitBurst      int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	apiURL := strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/")

	if env == "production" && os.Getenv("API_BASE_URL") == "" {
		log.Printf("API_BASE_URL is not set in production; using %s", apiURL)
	}

	return Config{
		Port:                getEnv("PORT", "3000"),
		Env:                 env,
		APIBaseURL:          apiURL,
		APITimeout:          getDuration("API_TIMEOUT", 0),
		UserID:              getInt("JOBPREP_USER_ID", 1),
		ExportUserID:        getInt("EXPORT_USER_ID", 1),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ViewStateTTL:        getDuration("VIEW_STATE_TTL", 2*time.Hour),
		ViewStateSweep:      getDuration("VIEW_STATE_SWEEP_INTERVAL", 10*time.Minute),
		ObjectStoreType:     normalizeStoreType(getEnv("EXPORT_ARCHIVE", "none")),
		LocalStoreDir:       getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:           getEnv("AWS_REGION", ""),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Prefix:            getEnv("S3_PREFIX", "exports/"),
		SSEKMSKeyID:         getEnv("SSE_KMS_KEY_ID", ""),
		ExportSurfaceErrors: getBool("EXPORT_SURFACE_ERRORS", true),
		RateLimitRate:       getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:      getInt("RATE_LIMIT_BURST", 20),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid float: %v", key, err)
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config %s invalid duration: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "local":
		return "local"
	default:
		return "none"
	}
}
