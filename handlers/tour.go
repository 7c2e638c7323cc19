package handlers

import (
	"net/http"

	"simba/middleware"
	"simba/models"
	"simba/services/tour"
	"simba/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TourHandler serves the public catalog and the admin tour pages.
type TourHandler struct {
	Service tour.TourService
}

func NewTourHandler(svc tour.TourService) *TourHandler {
	return &TourHandler{Service: svc}
}

func adminID(c *gin.Context) string {
	if p := middleware.PrincipalFrom(c); p != nil {
		return p.ID
	}
	return ""
}

// ListToursHandler returns every tour, newest first.
func (h *TourHandler) ListToursHandler(c *gin.Context) {
	tours, err := h.Service.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

// FeaturedToursHandler returns up to ?limit featured tours.
func (h *TourHandler) FeaturedToursHandler(c *gin.Context) {
	tours, err := h.Service.Featured(c.Request.Context(), queryInt(c, "limit", 3))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tours)
}

func (h *TourHandler) GetTourBySlugHandler(c *gin.Context) {
	t, err := h.Service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TourHandler) GetTourHandler(c *gin.Context) {
	t, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// RecordViewHandler counts a tour detail page view.
func (h *TourHandler) RecordViewHandler(c *gin.Context) {
	if err := h.Service.RecordView(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *TourHandler) CreateTourHandler(c *gin.Context) {
	var input models.TourInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.Service.Create(c.Request.Context(), input, adminID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TourHandler) UpdateTourHandler(c *gin.Context) {
	var input models.TourInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := h.Service.Update(c.Request.Context(), c.Param("id"), input, adminID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TourHandler) DeleteTourHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), adminID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tour deleted successfully"})
}

// UploadImageHandler replaces a tour's cover image with the multipart "image" field.
func (h *TourHandler) UploadImageHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "image file not provided")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		getLogger(c).Error("failed to open uploaded image", zap.String("filename", fileHeader.Filename), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "could not read uploaded image")
		return
	}
	defer file.Close()

	t, err := h.Service.UploadImage(c.Request.Context(), c.Param("id"), file, adminID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
