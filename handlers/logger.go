package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the global logger tagged with the request id set by the
// request-meta middleware.
func getLogger(c *gin.Context) *zap.Logger {
	logger := zap.L()
	if id := c.GetString("requestId"); id != "" {
		logger = logger.With(zap.String("requestId", id))
	}
	return logger
}
