package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// DocumentChunk represents one indexed fragment of a property document
type DocumentChunk struct {
	ID        int64           `json:"id" db:"id"`
	PDFName   string          `json:"pdf_name" db:"pdf_name"`
	Title     *string         `json:"title,omitempty" db:"title"`
	Content   string          `json:"content" db:"content"`
	Embedding pgvector.Vector `json:"-" db:"embedding"`
	TextRank  *float64        `json:"text_rank,omitempty" db:"text_rank"` // Full-text search ranking
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Property represents a property record used for AI-generated descriptions
type Property struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"nombre" db:"name"`
	Price     *float64  `json:"precio,omitempty" db:"price"`
	Location  *string   `json:"ubicacion,omitempty" db:"location"`
	Bedrooms  *int      `json:"dormitorios,omitempty" db:"bedrooms"`
	Bathrooms *int      `json:"banos,omitempty" db:"bathrooms"`
	AreaM2    *float64  `json:"superficie_m2,omitempty" db:"area_m2"`
	Features  JSONArray `json:"caracteristicas,omitempty" db:"features"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
