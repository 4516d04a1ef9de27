package model

// ConversationTurn represents one prior customer/assistant exchange
type ConversationTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PropertyQuery represents an incoming customer query from the WhatsApp pipeline
type PropertyQuery struct {
	Query               string             `json:"query" binding:"required"`
	ClientPhone         string             `json:"client_phone"`
	AgentPhone          string             `json:"agent_phone"`
	ConversationHistory []ConversationTurn `json:"conversation_history,omitempty"`
	Context             map[string]any     `json:"context,omitempty"`
}

// PropertyResponse represents the assistant reply plus structured metadata
type PropertyResponse struct {
	Success             bool             `json:"success"`
	Response            string           `json:"response"`
	Suggestions         []string         `json:"suggestions"`
	PropertiesMentioned []map[string]any `json:"properties_mentioned"`
	RequiresHuman       bool             `json:"requires_human"`
	Metadata            map[string]any   `json:"metadata"`
}

// PreferenceRequest represents a request to extract client preferences
type PreferenceRequest struct {
	Query       string `json:"query" binding:"required"`
	ClientPhone string `json:"client_phone"`
}

// QueryLog records one processed query for observability
type QueryLog struct {
	ID             string `json:"id" db:"id"`
	ClientPhone    string `json:"client_phone" db:"client_phone"`
	Query          string `json:"query" db:"query"`
	Intent         string `json:"intent" db:"intent"`
	RequiresHuman  bool   `json:"requires_human" db:"requires_human"`
	UsedContext    bool   `json:"used_context" db:"used_context"`
	ResponseTimeMs int    `json:"response_time_ms" db:"response_time_ms"`
}

// EmbeddingBatchRequest represents a batch of precomputed chunk embeddings
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem carries one precomputed embedding for a document chunk
type EmbeddingItem struct {
	ChunkID   int64     `json:"chunk_id" binding:"required"`
	Embedding []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchResponse represents the response for a batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
