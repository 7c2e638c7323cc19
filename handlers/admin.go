package handlers

import (
	"context"
	"net/http"

	"simba/models"
	"simba/services/auth"
	"simba/services/dashboard"
	"simba/utils"

	"github.com/gin-gonic/gin"
)

// AdminLoginer signs an operator in.
type AdminLoginer interface {
	Login(ctx context.Context, creds models.Credentials) (*auth.LoginResponse, error)
}

// AdminHandler encapsulates operator sign-in and the dashboard.
type AdminHandler struct {
	Auth      AdminLoginer
	Dashboard dashboard.DashboardService
}

func NewAdminHandler(a AdminLoginer, d dashboard.DashboardService) *AdminHandler {
	return &AdminHandler{Auth: a, Dashboard: d}
}

// LoginHandler exchanges admin credentials for a token.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Password is required")
		return
	}
	resp, err := h.Auth.Login(c.Request.Context(), creds)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DashboardStatsHandler returns the overview, top tours and recent bookings.
func (h *AdminHandler) DashboardStatsHandler(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
