package handler

import (
	"net/http"

	"asistente/internal/model"
	"asistente/internal/service"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler handles client preference extraction requests
type PreferenceHandler struct {
	extractor *service.PreferenceExtractor
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(extractor *service.PreferenceExtractor) *PreferenceHandler {
	return &PreferenceHandler{extractor: extractor}
}

// AnalyzePreferences handles POST /api/ia/analyze-preferences
func (h *PreferenceHandler) AnalyzePreferences(c *gin.Context) {
	var req model.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	preferences := h.extractor.Extract(req.Query)
	c.JSON(http.StatusOK, preferences)
}
