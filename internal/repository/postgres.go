package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"asistente/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository handles database operations for the document index,
// property records and query logs
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// SearchChunks performs a full-text search over indexed document chunks and
// returns the topK most relevant ones. Chunks that do not match the query at
// all are excluded, so an empty result means the index has nothing relevant.
func (r *PostgresRepository) SearchChunks(ctx context.Context, query string, topK int) ([]model.DocumentChunk, error) {
	selectQuery := `
		SELECT
			id, pdf_name, title, content, created_at, updated_at,
			ts_rank(search_vector, plainto_tsquery('spanish', $1)) as text_rank
		FROM document_chunks
		WHERE search_vector @@ plainto_tsquery('spanish', $1)
		ORDER BY text_rank DESC
		LIMIT $2
	`

	var chunks []model.DocumentChunk
	if err := r.db.SelectContext(ctx, &chunks, selectQuery, query, topK); err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}

	return chunks, nil
}

// SuggestTitles returns distinct chunk titles ranked by full-text relevance.
// Untitled chunks are skipped.
func (r *PostgresRepository) SuggestTitles(ctx context.Context, query string, limit int) ([]string, error) {
	selectQuery := `
		SELECT title FROM (
			SELECT DISTINCT ON (title)
				title,
				ts_rank(search_vector, plainto_tsquery('spanish', $1)) as text_rank
			FROM document_chunks
			WHERE title IS NOT NULL
			ORDER BY title, text_rank DESC
		) ranked
		ORDER BY text_rank DESC
		LIMIT $2
	`

	titles := []string{}
	if err := r.db.SelectContext(ctx, &titles, selectQuery, query, limit); err != nil {
		return nil, fmt.Errorf("failed to suggest titles: %w", err)
	}

	return titles, nil
}

// IndexOverview reports how many chunks are indexed and which source PDFs they
// came from
func (r *PostgresRepository) IndexOverview(ctx context.Context) (*model.IndexOverview, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM document_chunks"); err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}

	pdfs := []string{}
	if err := r.db.SelectContext(ctx, &pdfs, "SELECT DISTINCT pdf_name FROM document_chunks ORDER BY pdf_name"); err != nil {
		return nil, fmt.Errorf("failed to list indexed pdfs: %w", err)
	}

	return &model.IndexOverview{TotalChunks: total, PDFs: pdfs}, nil
}

// BatchUpdateEmbeddings stores externally computed embeddings for document chunks
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errors []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE document_chunks SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, vec, item.ChunkID); err != nil {
			errors = append(errors, fmt.Sprintf("chunk_id %d: %v", item.ChunkID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

// GetPropertyByID retrieves a single property record, or nil when unknown
func (r *PostgresRepository) GetPropertyByID(ctx context.Context, id int64) (*model.Property, error) {
	var property model.Property
	query := `
		SELECT id, name, price, location, bedrooms, bathrooms, area_m2, features,
			created_at, updated_at
		FROM properties
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// LogQuery records one processed query for observability
func (r *PostgresRepository) LogQuery(ctx context.Context, entry *model.QueryLog) error {
	insertQuery := `
		INSERT INTO query_logs (id, client_phone, query, intent, requires_human, used_context, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, insertQuery,
		entry.ID, entry.ClientPhone, entry.Query, entry.Intent,
		entry.RequiresHuman, entry.UsedContext, entry.ResponseTimeMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log query: %w", err)
	}
	return nil
}
