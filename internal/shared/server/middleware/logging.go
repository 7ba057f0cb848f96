package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		view, _ := c.Get("view")
		instanceID, _ := c.Get("instanceId")
		action := ""
		if raw, ok := c.Get("action"); ok {
			if s, ok := raw.(string); ok {
				action = s
			}
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":  reqID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"action":      action,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"view":        view,
			"instance_id": instanceID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
