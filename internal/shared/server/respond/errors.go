package respond

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobprep-web/internal/shared/telemetry"
	"jobprep-web/internal/web"
)

// ErrorBody is the JSON error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorPage is what error.html renders.
type ErrorPage struct {
	Status     int
	StatusText string
	Code       string
	Message    string
	Back       string
	BackLabel  string
}

// Error logs the failure and aborts with it. Browsers asking for HTML get
// an error page linking back to the view; everything else gets JSON.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	view := c.GetString("view")
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if view != "" {
		fields["view"] = view
	}
	if instanceID := c.GetString("instanceId"); instanceID != "" {
		fields["instance_id"] = instanceID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	if wantsHTML(c) {
		c.Abort()
		c.HTML(status, "error.html", web.NewPage(view, "Error", "", nil, errorPage(status, code, message, view)))
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func errorPage(status int, code, message, view string) ErrorPage {
	back, label := web.DefaultPath, "Resume"
	for _, item := range web.Nav(view) {
		if item.Active {
			back, label = item.Path, item.Label
		}
	}
	return ErrorPage{
		Status:     status,
		StatusText: http.StatusText(status),
		Code:       code,
		Message:    message,
		Back:       back,
		BackLabel:  label,
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
