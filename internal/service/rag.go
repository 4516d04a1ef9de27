package service

import (
	"context"
	"fmt"
	"strings"

	"asistente/internal/config"
	"asistente/internal/model"

	"go.uber.org/zap"
)

const ragSystemPrompt = "Eres un asistente inmobiliario virtual. Responde en español " +
	"usando únicamente la información del contexto proporcionado. Si el contexto no " +
	"contiene la respuesta, dilo claramente."

// Chatter is the interface for chat completion against an OpenAI-compatible API
type Chatter interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
	IsEnabled() bool
}

// ChunkStore is the interface for retrieving indexed document chunks
type ChunkStore interface {
	SearchChunks(ctx context.Context, query string, topK int) ([]model.DocumentChunk, error)
}

// RAGService answers queries conditioned on retrieved document chunks. When no
// relevant chunk is found (or the generative backend is disabled) it reports
// UsedContext=false and leaves the reply to the caller's templates.
type RAGService struct {
	store  ChunkStore
	chat   Chatter
	config *config.RAGConfig
	logger *zap.Logger
}

// NewRAGService creates a new retrieval-augmented answering service
func NewRAGService(store ChunkStore, chat Chatter, cfg *config.RAGConfig, logger *zap.Logger) *RAGService {
	return &RAGService{
		store:  store,
		chat:   chat,
		config: cfg,
		logger: logger,
	}
}

// AnswerWithContext implements ContextAnswerer
func (s *RAGService) AnswerWithContext(ctx context.Context, query, history string) (*model.ContextAnswer, error) {
	chunks, err := s.store.SearchChunks(ctx, query, s.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("failed to search document index: %w", err)
	}

	if len(chunks) == 0 {
		s.logger.Info("no relevant chunks found", zap.String("query", query))
		return &model.ContextAnswer{UsedContext: false}, nil
	}

	if !s.chat.IsEnabled() {
		s.logger.Warn("generative backend disabled, skipping context answer")
		return &model.ContextAnswer{UsedContext: false}, nil
	}

	resp, err := s.chat.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: ragSystemPrompt},
			{Role: "user", Content: buildRAGPrompt(query, history, chunks)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	answer, err := resp.FirstChoice()
	if err != nil {
		return nil, err
	}

	s.logger.Info("context answer generated",
		zap.String("query", query),
		zap.Int("chunks", len(chunks)),
	)

	return &model.ContextAnswer{Answer: answer, UsedContext: true}, nil
}

// buildRAGPrompt assembles the user prompt from retrieved chunks, the
// conversation history and the question, in that order
func buildRAGPrompt(query, history string, chunks []model.DocumentChunk) string {
	var b strings.Builder

	b.WriteString("Contexto:\n")
	for i, chunk := range chunks {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, chunk.PDFName, chunk.Content)
	}

	if history != "" {
		b.WriteString("\nHistorial de conversación:\n")
		b.WriteString(history)
		b.WriteString("\n")
	}

	b.WriteString("\nPregunta: ")
	b.WriteString(query)

	return b.String()
}

// Ensure RAGService implements ContextAnswerer
var _ ContextAnswerer = (*RAGService)(nil)
