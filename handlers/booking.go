package handlers

import (
	"net/http"

	"simba/middleware"
	"simba/models"
	"simba/services/booking"
	"simba/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves storefront bookings and the admin booking pages.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler accepts a storefront booking. A customer token, when
// present, decides the owner.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing required booking fields")
		return
	}
	b, err := h.Service.Create(c.Request.Context(), req, middleware.PrincipalFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func bookingFilter(c *gin.Context) models.BookingFilter {
	return models.BookingFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		Search:        c.Query("search"),
		Page:          queryInt(c, "page", 1),
		Limit:         queryInt(c, "limit", 20),
	}
}

// ListBookingsHandler returns a bare array, newest first.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	bookings, _, err := h.Service.List(c.Request.Context(), bookingFilter(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// AdminListBookingsHandler returns one filtered page plus its pagination block.
func (h *BookingHandler) AdminListBookingsHandler(c *gin.Context) {
	bookings, page, err := h.Service.List(c.Request.Context(), bookingFilter(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "pagination": page})
}

// MyBookingsHandler lists the signed-in customer's bookings.
func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	bookings, err := h.Service.ForCustomer(c.Request.Context(), p.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var upd models.BookingUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	b, err := h.Service.Update(c.Request.Context(), c.Param("id"), upd, adminID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), adminID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
