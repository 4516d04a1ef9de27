package handler

import (
	"net/http"
	"time"

	"asistente/internal/service"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the state of the AI module and its components
type HealthHandler struct {
	suggester   service.Suggester
	chatModel   string
	chatEnabled bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(suggester service.Suggester, chatModel string, chatEnabled bool) *HealthHandler {
	return &HealthHandler{
		suggester:   suggester,
		chatModel:   chatModel,
		chatEnabled: chatEnabled,
	}
}

// Check handles GET /api/ia/health
func (h *HealthHandler) Check(c *gin.Context) {
	overview, err := h.suggester.IndexOverview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"service":   "ia-module",
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	indexStatus := "ready"
	if overview.TotalChunks == 0 {
		indexStatus = "empty"
	}

	generativeStatus := "ready"
	if !h.chatEnabled {
		generativeStatus = "disabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"service": "ia-module",
		"status":  "healthy",
		"components": gin.H{
			"document_index": gin.H{
				"status":       indexStatus,
				"total_chunks": overview.TotalChunks,
				"pdfs_loaded":  len(overview.PDFs),
			},
			"generative": gin.H{
				"status": generativeStatus,
				"model":  h.chatModel,
			},
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
