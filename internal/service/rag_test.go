package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"asistente/internal/config"
	"asistente/internal/model"

	"go.uber.org/zap"
)

type mockChunkStore struct {
	chunks []model.DocumentChunk
	err    error
}

func (m *mockChunkStore) SearchChunks(_ context.Context, _ string, _ int) ([]model.DocumentChunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

type mockChatter struct {
	enabled bool
	content string
	err     error
	calls   int
	lastReq ChatCompletionRequest
}

func (m *mockChatter) ChatCompletion(_ context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	resp := &ChatCompletionResponse{}
	resp.Choices = append(resp.Choices, struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	}{Message: ChatMessage{Role: "assistant", Content: m.content}})
	return resp, nil
}

func (m *mockChatter) IsEnabled() bool {
	return m.enabled
}

func newTestRAGService(store ChunkStore, chat Chatter) *RAGService {
	return NewRAGService(store, chat, &config.RAGConfig{TopK: 4}, zap.NewNop())
}

func TestRAGService_NoRelevantChunks(t *testing.T) {
	chat := &mockChatter{enabled: true}
	rag := newTestRAGService(&mockChunkStore{}, chat)

	answer, err := rag.AnswerWithContext(context.Background(), "algo muy raro", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if answer.UsedContext {
		t.Error("Expected used_context to be false with an empty retrieval result")
	}
	if chat.calls != 0 {
		t.Errorf("Expected no completion call without context, got %d", chat.calls)
	}
}

func TestRAGService_AnswersWithContext(t *testing.T) {
	store := &mockChunkStore{chunks: []model.DocumentChunk{
		{PDFName: "catalogo.pdf", Content: "Casa en Equipetrol, 180000 Bs"},
	}}
	chat := &mockChatter{enabled: true, content: "La casa en Equipetrol cuesta 180000 Bs."}
	rag := newTestRAGService(store, chat)

	history := "Cliente: hola\nAsistente: buenos días"
	answer, err := rag.AnswerWithContext(context.Background(), "cuánto cuesta la casa", history)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !answer.UsedContext {
		t.Error("Expected used_context to be true")
	}
	if answer.Answer != chat.content {
		t.Errorf("Expected the completion content, got %q", answer.Answer)
	}

	if len(chat.lastReq.Messages) != 2 {
		t.Fatalf("Expected system+user messages, got %d", len(chat.lastReq.Messages))
	}
	prompt := chat.lastReq.Messages[1].Content
	if !strings.Contains(prompt, "Casa en Equipetrol") {
		t.Errorf("Expected retrieved chunk in the prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, history) {
		t.Errorf("Expected conversation history in the prompt, got %q", prompt)
	}
}

func TestRAGService_ChatDisabled(t *testing.T) {
	store := &mockChunkStore{chunks: []model.DocumentChunk{{PDFName: "catalogo.pdf", Content: "algo"}}}
	chat := &mockChatter{enabled: false}
	rag := newTestRAGService(store, chat)

	answer, err := rag.AnswerWithContext(context.Background(), "hola", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if answer.UsedContext {
		t.Error("Expected used_context to be false when the backend is disabled")
	}
	if chat.calls != 0 {
		t.Errorf("Expected no completion call when disabled, got %d", chat.calls)
	}
}

func TestRAGService_StoreErrorPropagates(t *testing.T) {
	rag := newTestRAGService(&mockChunkStore{err: errors.New("connection refused")}, &mockChatter{enabled: true})

	if _, err := rag.AnswerWithContext(context.Background(), "hola", ""); err == nil {
		t.Fatal("Expected an error when the chunk store fails")
	}
}

func TestRAGService_ChatErrorPropagates(t *testing.T) {
	store := &mockChunkStore{chunks: []model.DocumentChunk{{PDFName: "catalogo.pdf", Content: "algo"}}}
	chat := &mockChatter{enabled: true, err: errors.New("model not loaded")}
	rag := newTestRAGService(store, chat)

	if _, err := rag.AnswerWithContext(context.Background(), "hola", ""); err == nil {
		t.Fatal("Expected an error when the completion fails")
	}
}
