package handlers

import (
	"net/http"

	"simba/models"
	"simba/services/customer"
	"simba/utils"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves storefront sign-up and sign-in.
type CustomerHandler struct {
	Service customer.CustomerService
}

func NewCustomerHandler(svc customer.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: svc}
}

// RegisterHandler creates an account and links earlier guest bookings to it.
func (h *CustomerHandler) RegisterHandler(c *gin.Context) {
	var reg models.CustomerRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	resp, err := h.Service.Register(c.Request.Context(), reg)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CustomerHandler) LoginHandler(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), creds)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
