package handlers

import (
	"net/http"

	"simba/services/analytics"
	"simba/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	Service analytics.AnalyticsService
}

func NewAnalyticsHandler(svc analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: svc}
}

// RecentHandler returns one row per day for the last ?days days.
func (h *AnalyticsHandler) RecentHandler(c *gin.Context) {
	rows, err := h.Service.Recent(c.Request.Context(), queryInt(c, "days", 14))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
