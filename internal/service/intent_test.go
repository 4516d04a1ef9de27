package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"asistente/internal/model"

	"go.uber.org/zap"
)

type mockAnswerer struct {
	answer      *model.ContextAnswer
	err         error
	calls       int
	lastQuery   string
	lastHistory string
}

func (m *mockAnswerer) AnswerWithContext(_ context.Context, query, history string) (*model.ContextAnswer, error) {
	m.calls++
	m.lastQuery = query
	m.lastHistory = history
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

type mockSuggester struct {
	titles []string
	err    error
	calls  int
}

func (m *mockSuggester) SuggestTitles(_ context.Context, _ string, maxSuggestions int) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.titles) > maxSuggestions {
		return m.titles[:maxSuggestions], nil
	}
	return m.titles, nil
}

func (m *mockSuggester) IndexOverview(_ context.Context) (*model.IndexOverview, error) {
	return &model.IndexOverview{}, nil
}

func newTestClassifier(answerer ContextAnswerer, suggester Suggester) *IntentClassifier {
	return NewIntentClassifier(answerer, suggester, 3, 5, zap.NewNop())
}

func TestIntentClassifier_VisitRequestPriority(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{
			name:  "plain visit request",
			query: "me gustaría visitar la propiedad",
		},
		{
			name:  "visit word wins over price and location words",
			query: "quiero visitar la casa, qué precio tiene y en qué zona está",
		},
		{
			name:  "scheduling word",
			query: "podemos agendar para mañana",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := &mockAnswerer{}
			suggester := &mockSuggester{}
			classifier := newTestClassifier(answerer, suggester)

			response, err := classifier.ClassifyAndRespond(context.Background(), tt.query, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if !response.RequiresHuman {
				t.Error("Expected requires_human to be true for a visit request")
			}
			if response.Metadata["intent"] != "visit_request" {
				t.Errorf("Expected intent metadata visit_request, got %v", response.Metadata["intent"])
			}
			if answerer.calls != 0 {
				t.Errorf("Expected no upstream context call, got %d", answerer.calls)
			}
			if suggester.calls != 0 {
				t.Errorf("Expected no suggestion fetch, got %d", suggester.calls)
			}
		})
	}
}

func TestIntentClassifier_UsedContextVerbatim(t *testing.T) {
	answerer := &mockAnswerer{
		answer: &model.ContextAnswer{
			Answer:      "La casa del catálogo cuesta 120000 Bs.",
			UsedContext: true,
		},
	}
	suggester := &mockSuggester{titles: []string{"Casa Equipetrol", "Depto Centro"}}
	classifier := newTestClassifier(answerer, suggester)

	response, err := classifier.ClassifyAndRespond(context.Background(), "cuánto cuesta la casa del catálogo", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if response.Response != answerer.answer.Answer {
		t.Errorf("Expected the upstream answer to be returned verbatim, got %q", response.Response)
	}
	if response.RequiresHuman {
		t.Error("Expected requires_human to be false")
	}
	if response.Metadata["used_context"] != true {
		t.Errorf("Expected used_context metadata true, got %v", response.Metadata["used_context"])
	}
	if !reflect.DeepEqual(response.Suggestions, suggester.titles) {
		t.Errorf("Expected suggestions %v, got %v", suggester.titles, response.Suggestions)
	}
}

func TestIntentClassifier_TemplatePrecedence(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantContains string
	}{
		{
			name:         "price wins over location",
			query:        "qué precio tienen en esa zona",
			wantContains: "precios de nuestras propiedades",
		},
		{
			name:         "location template",
			query:        "en qué barrio están",
			wantContains: "varias zonas de la ciudad",
		},
		{
			name:         "availability falls through to generic",
			query:        "está disponible todavía",
			wantContains: "asistente inmobiliario virtual",
		},
		{
			name:         "plain query gets generic template",
			query:        "hola, necesito ayuda",
			wantContains: "asistente inmobiliario virtual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := &mockAnswerer{answer: &model.ContextAnswer{UsedContext: false}}
			suggester := &mockSuggester{}
			classifier := newTestClassifier(answerer, suggester)

			response, err := classifier.ClassifyAndRespond(context.Background(), tt.query, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if !strings.Contains(response.Response, tt.wantContains) {
				t.Errorf("Expected response to contain %q, got %q", tt.wantContains, response.Response)
			}
			if response.Metadata["used_context"] != false {
				t.Errorf("Expected used_context metadata false, got %v", response.Metadata["used_context"])
			}
		})
	}
}

func TestIntentClassifier_GenericTemplateListsTopics(t *testing.T) {
	answerer := &mockAnswerer{answer: &model.ContextAnswer{UsedContext: false}}
	suggester := &mockSuggester{titles: []string{"Casa Equipetrol", "Depto Centro"}}
	classifier := newTestClassifier(answerer, suggester)

	response, err := classifier.ClassifyAndRespond(context.Background(), "hola, necesito ayuda", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(response.Response, "También puedo informarte sobre: Casa Equipetrol y Depto Centro") {
		t.Errorf("Expected inline topics in the generic reply, got %q", response.Response)
	}
	if !reflect.DeepEqual(response.Suggestions, suggester.titles) {
		t.Errorf("Expected suggestions %v, got %v", suggester.titles, response.Suggestions)
	}
}

func TestIntentClassifier_HistoryFormatting(t *testing.T) {
	answerer := &mockAnswerer{answer: &model.ContextAnswer{Answer: "ok", UsedContext: true}}
	classifier := newTestClassifier(answerer, &mockSuggester{})

	history := []model.ConversationTurn{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
		{Question: "q4", Answer: "a4"},
		{Question: "q5", Answer: "a5"},
		{Question: "q6", Answer: "a6"},
		{Question: "q7", Answer: "a7"},
	}

	if _, err := classifier.ClassifyAndRespond(context.Background(), "hola", history); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "Cliente: q3\nAsistente: a3\n" +
		"Cliente: q4\nAsistente: a4\n" +
		"Cliente: q5\nAsistente: a5\n" +
		"Cliente: q6\nAsistente: a6\n" +
		"Cliente: q7\nAsistente: a7"
	if answerer.lastHistory != want {
		t.Errorf("Expected history:\n%s\ngot:\n%s", want, answerer.lastHistory)
	}
}

func TestIntentClassifier_UpstreamErrorPropagates(t *testing.T) {
	answerer := &mockAnswerer{err: errors.New("backend unreachable")}
	classifier := newTestClassifier(answerer, &mockSuggester{})

	response, err := classifier.ClassifyAndRespond(context.Background(), "hola", nil)
	if err == nil {
		t.Fatal("Expected an error when the context service fails")
	}
	if response != nil {
		t.Errorf("Expected no response on upstream failure, got %+v", response)
	}
}

func TestIntentClassifier_SuggestionErrorPropagates(t *testing.T) {
	answerer := &mockAnswerer{answer: &model.ContextAnswer{UsedContext: false}}
	suggester := &mockSuggester{err: errors.New("index unavailable")}
	classifier := newTestClassifier(answerer, suggester)

	if _, err := classifier.ClassifyAndRespond(context.Background(), "hola", nil); err == nil {
		t.Fatal("Expected an error when the suggestion service fails")
	}
}

func TestIntentClassifier_Classify(t *testing.T) {
	classifier := newTestClassifier(&mockAnswerer{}, &mockSuggester{})

	tests := []struct {
		query string
		want  model.IntentCategory
	}{
		{"quiero visitar la propiedad", model.IntentVisitRequest},
		{"cuánto cuesta", model.IntentPriceQuery},
		{"en qué barrio queda", model.IntentLocationQuery},
		{"sigue disponible", model.IntentAvailabilityQuery},
		{"hola, necesito ayuda", model.IntentGeneric},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			if got := classifier.Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
