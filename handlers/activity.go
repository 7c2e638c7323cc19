package handlers

import (
	"net/http"

	"simba/models"
	"simba/services/activity"
	"simba/utils"

	"github.com/gin-gonic/gin"
)

// ActivityHandler serves the storefront tracker and the admin activity pages.
type ActivityHandler struct {
	Service activity.ActivityService
}

func NewActivityHandler(svc activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: svc}
}

// TrackHandler accepts a client-side activity event.
func (h *ActivityHandler) TrackHandler(c *gin.Context) {
	var event models.ClientActivity
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Action and description are required")
		return
	}
	if err := h.Service.Track(c.Request.Context(), event); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *ActivityHandler) ListHandler(c *gin.Context) {
	filter := models.ActivityFilter{
		Action:     c.Query("action"),
		EntityType: c.Query("entityType"),
		Severity:   c.Query("severity"),
		Page:       queryInt(c, "page", 1),
		Limit:      pageLimit(c, 50, 200),
	}
	logs, total, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": pagination(total, filter.Page, filter.Limit),
	})
}

func (h *ActivityHandler) SummaryHandler(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
