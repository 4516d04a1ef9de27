package service

import (
	"context"

	"asistente/internal/model"
)

// ContextAnswerer is the interface for retrieval-augmented answer generation
type ContextAnswerer interface {
	// AnswerWithContext answers the query conditioned on indexed material and the
	// conversation history. UsedContext reports whether relevant indexed
	// material was found and used.
	AnswerWithContext(ctx context.Context, query, history string) (*model.ContextAnswer, error)
}

// Suggester is the interface for the document index suggestion service
type Suggester interface {
	// SuggestTitles returns up to maxSuggestions ranked candidate titles for the query
	SuggestTitles(ctx context.Context, query string, maxSuggestions int) ([]string, error)

	// IndexOverview reports the loaded state of the document index
	IndexOverview(ctx context.Context) (*model.IndexOverview, error)
}
