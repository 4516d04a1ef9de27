package handler

import (
	"net/http"
	"strconv"

	"asistente/internal/service"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles AI-generated property description requests
type PropertyHandler struct {
	properties *service.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// GetPropertyInfo handles GET /api/ia/property-info/:id
func (h *PropertyHandler) GetPropertyInfo(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	property, description, err := h.properties.Describe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to describe property: " + err.Error()})
		return
	}

	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"property_id":   idStr,
		"description":   description,
		"property_data": property,
	})
}
