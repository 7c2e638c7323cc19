package handlers

import (
	"net/http"

	"simba/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last Mongo and Redis probe. Redis being down is
// degraded, not fatal: receipts and activity delivery have fallbacks.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	state, code := "ok", http.StatusOK
	switch {
	case !status.Mongo:
		state, code = "unavailable", http.StatusServiceUnavailable
	case !status.Redis:
		state = "degraded"
	}
	c.JSON(code, gin.H{
		"status":    state,
		"mongo":     status.Mongo,
		"redis":     status.Redis,
		"checkedAt": status.CheckedAt,
	})
}
