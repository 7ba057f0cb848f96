package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Tag records the view, instance and action on the request for logging.
func Tag(c *gin.Context, view, instanceID, action string) {
	c.Set("view", view)
	if instanceID != "" {
		c.Set("instanceId", instanceID)
	}
	if action != "" {
		c.Set("action", action)
	}
}

// Remount sends the browser back to the view root, which mounts a fresh instance.
func Remount(c *gin.Context, view string) {
	c.Redirect(http.StatusFound, "/"+view)
}

// Mounted redirects a fresh mount to its instance URL.
func Mounted(c *gin.Context, view, instanceID string) {
	c.Redirect(http.StatusFound, ActionPath(view, instanceID))
}
