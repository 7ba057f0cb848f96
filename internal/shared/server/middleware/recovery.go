package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/shared/server/respond"
	"jobprep-web/internal/shared/telemetry"
)

// Recovery turns a panicking view handler into a 500. When the handler had
// already started writing (a half-sent attachment, say), the connection is
// only aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("panic", map[string]any{
				"request_id":  RequestIDFromContext(c),
				"view":        c.GetString("view"),
				"instance_id": c.GetString("instanceId"),
				"action":      c.GetString("action"),
				"error":       fmt.Sprint(rec),
				"stack":       string(debug.Stack()),
				"path":        c.Request.URL.Path,
				"method":      c.Request.Method,
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
