package handler

import (
	"context"
	"net/http"
	"time"

	"asistente/internal/model"
	"asistente/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QueryLogStore is the interface for recording processed queries
type QueryLogStore interface {
	LogQuery(ctx context.Context, entry *model.QueryLog) error
}

// QueryHandler handles customer property queries from the WhatsApp pipeline
type QueryHandler struct {
	classifier *service.IntentClassifier
	logStore   QueryLogStore
	logger     *zap.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(classifier *service.IntentClassifier, logStore QueryLogStore, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		classifier: classifier,
		logStore:   logStore,
		logger:     logger,
	}
}

// ProcessQuery handles POST /api/ia/process-query
func (h *QueryHandler) ProcessQuery(c *gin.Context) {
	var req model.PropertyQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	h.logger.Info("processing property query",
		zap.String("client_phone", req.ClientPhone),
		zap.String("query", req.Query),
	)

	startTime := time.Now()
	response, err := h.classifier.ClassifyAndRespond(c.Request.Context(), req.Query, req.ConversationHistory)
	if err != nil {
		h.logger.Error("failed to process query", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process query: " + err.Error()})
		return
	}
	took := time.Since(startTime).Milliseconds()

	// Log the query (non-blocking)
	go func() {
		usedContext, _ := response.Metadata["used_context"].(bool)
		entry := &model.QueryLog{
			ID:             uuid.NewString(),
			ClientPhone:    req.ClientPhone,
			Query:          req.Query,
			Intent:         string(h.classifier.Classify(req.Query)),
			RequiresHuman:  response.RequiresHuman,
			UsedContext:    usedContext,
			ResponseTimeMs: int(took),
		}
		if err := h.logStore.LogQuery(context.Background(), entry); err != nil {
			h.logger.Warn("failed to log query", zap.Error(err))
		}
	}()

	c.JSON(http.StatusOK, response)
}
