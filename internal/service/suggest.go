package service

import (
	"context"
	"fmt"

	"asistente/internal/model"

	"go.uber.org/zap"
)

// SuggestionStore is the interface for the title/overview side of the document index
type SuggestionStore interface {
	SuggestTitles(ctx context.Context, query string, limit int) ([]string, error)
	IndexOverview(ctx context.Context) (*model.IndexOverview, error)
}

// SuggestionService surfaces candidate document titles to enrich generic
// replies and exposes the index overview for health reporting
type SuggestionService struct {
	store  SuggestionStore
	logger *zap.Logger
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(store SuggestionStore, logger *zap.Logger) *SuggestionService {
	return &SuggestionService{store: store, logger: logger}
}

// SuggestTitles implements Suggester
func (s *SuggestionService) SuggestTitles(ctx context.Context, query string, maxSuggestions int) ([]string, error) {
	titles, err := s.store.SuggestTitles(ctx, query, maxSuggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest titles: %w", err)
	}

	s.logger.Debug("title suggestions fetched",
		zap.String("query", query),
		zap.Int("count", len(titles)),
	)

	return titles, nil
}

// IndexOverview implements Suggester
func (s *SuggestionService) IndexOverview(ctx context.Context) (*model.IndexOverview, error) {
	overview, err := s.store.IndexOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read index overview: %w", err)
	}
	return overview, nil
}

// Ensure SuggestionService implements Suggester
var _ Suggester = (*SuggestionService)(nil)
