package service

import (
	"context"
	"fmt"
	"strings"

	"asistente/internal/model"
	"asistente/internal/utils"

	"go.uber.org/zap"
)

// intentRules is the ordered keyword vocabulary for intent detection. Rules are
// evaluated top to bottom; visit_request has absolute priority over the rest.
var intentRules = []struct {
	category model.IntentCategory
	keywords []string
}{
	{model.IntentVisitRequest, []string{"visitar", "ver", "conocer", "cita", "agendar"}},
	{model.IntentPriceQuery, []string{"precio", "costo", "vale", "cuesta", "presupuesto"}},
	{model.IntentLocationQuery, []string{"zona", "ubicación", "dirección", "dónde", "barrio"}},
	{model.IntentAvailabilityQuery, []string{"disponible", "libre", "ocupado", "alquiler", "venta"}},
}

// Fixed reply templates for queries the document index cannot answer
const (
	visitResponse = "Entiendo que te gustaría visitar la propiedad. " +
		"Un agente se pondrá en contacto contigo pronto para coordinar una visita. " +
		"¿Hay algún horario que prefieras?"

	priceResponse = "Te puedo ayudar con información sobre precios de nuestras propiedades. " +
		"¿Qué tipo de propiedad te interesa? ¿Casa, departamento o terreno? " +
		"También sería útil saber en qué zona estás buscando."

	locationResponse = "Tenemos propiedades en varias zonas de la ciudad. " +
		"Las principales áreas disponibles son: Equipetrol, Zona Norte, " +
		"Urubó, y el Centro. ¿Cuál zona te interesa más?"

	genericResponse = "Soy tu asistente inmobiliario virtual. Puedo ayudarte con:\n" +
		"• Información sobre propiedades disponibles\n" +
		"• Precios y características\n" +
		"• Ubicaciones y zonas\n" +
		"• Proceso de compra o alquiler\n"
)

// IntentClassifier routes customer queries: visit requests are handed off to a
// human, everything else goes through the context-answering service with a
// category-templated fallback when the index has nothing relevant.
type IntentClassifier struct {
	answerer       ContextAnswerer
	suggester      Suggester
	maxSuggestions int
	historyTurns   int
	logger         *zap.Logger
}

// NewIntentClassifier creates a new intent classifier
func NewIntentClassifier(answerer ContextAnswerer, suggester Suggester, maxSuggestions, historyTurns int, logger *zap.Logger) *IntentClassifier {
	return &IntentClassifier{
		answerer:       answerer,
		suggester:      suggester,
		maxSuggestions: maxSuggestions,
		historyTurns:   historyTurns,
		logger:         logger,
	}
}

// ClassifyAndRespond classifies the query and assembles the assistant reply.
// Visit requests short-circuit with requires_human=true and no upstream call;
// any upstream failure is returned as-is, never papered over with a template.
func (c *IntentClassifier) ClassifyAndRespond(ctx context.Context, query string, history []model.ConversationTurn) (*model.PropertyResponse, error) {
	queryLower := strings.ToLower(query)
	matched := matchCategories(queryLower)

	if matched[model.IntentVisitRequest] {
		c.logger.Info("visit request detected, handing off to agent", zap.String("query", query))
		return &model.PropertyResponse{
			Success:             true,
			Response:            visitResponse,
			Suggestions:         []string{},
			PropertiesMentioned: []map[string]any{},
			RequiresHuman:       true,
			Metadata:            map[string]any{"intent": string(model.IntentVisitRequest)},
		}, nil
	}

	answer, err := c.answerer.AnswerWithContext(ctx, query, c.formatHistory(history))
	if err != nil {
		return nil, fmt.Errorf("context answer failed: %w", err)
	}

	if !answer.UsedContext {
		suggestions, err := c.suggester.SuggestTitles(ctx, query, c.maxSuggestions)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
		}

		c.logger.Info("no indexed context used, replying with template",
			zap.String("query", query),
			zap.Int("suggestions", len(suggestions)),
		)

		return &model.PropertyResponse{
			Success:             true,
			Response:            c.templateResponse(matched, suggestions),
			Suggestions:         suggestions,
			PropertiesMentioned: []map[string]any{},
			RequiresHuman:       false,
			Metadata:            map[string]any{"used_context": false},
		}, nil
	}

	// The suggestion fetch is repeated rather than shared between branches, so
	// each branch may surface a different suggestion set.
	suggestions, err := c.suggester.SuggestTitles(ctx, query, c.maxSuggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	return &model.PropertyResponse{
		Success:             true,
		Response:            answer.Answer,
		Suggestions:         suggestions,
		PropertiesMentioned: []map[string]any{},
		RequiresHuman:       false,
		Metadata:            map[string]any{"used_context": true},
	}, nil
}

// Classify reports the matched categories for a query without responding.
// Exposed for observability; visit_request still carries absolute priority.
func (c *IntentClassifier) Classify(query string) model.IntentCategory {
	matched := matchCategories(strings.ToLower(query))
	for _, rule := range intentRules {
		if matched[rule.category] {
			return rule.category
		}
	}
	return model.IntentGeneric
}

// matchCategories tests the query against every keyword rule. Multiple
// categories may match; priority is resolved by the callers.
func matchCategories(queryLower string) map[model.IntentCategory]bool {
	matched := make(map[model.IntentCategory]bool, len(intentRules))
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(queryLower, kw) {
				matched[rule.category] = true
				break
			}
		}
	}
	return matched
}

// templateResponse picks the fallback reply by category precedence:
// price > location > generic. Availability queries are detected but have no
// dedicated template and fall through to generic.
func (c *IntentClassifier) templateResponse(matched map[model.IntentCategory]bool, suggestions []string) string {
	switch {
	case matched[model.IntentPriceQuery]:
		return priceResponse
	case matched[model.IntentLocationQuery]:
		return locationResponse
	default:
		response := genericResponse
		if topics := utils.FormatTopicsInline(suggestions); topics != "" {
			response += "\nTambién puedo informarte sobre: " + topics
		}
		return response + "\n\n¿Qué información necesitas?"
	}
}

// formatHistory concatenates the most recent turns as alternating
// "Cliente:"/"Asistente:" lines in chronological order.
func (c *IntentClassifier) formatHistory(history []model.ConversationTurn) string {
	if len(history) > c.historyTurns {
		history = history[len(history)-c.historyTurns:]
	}

	lines := make([]string, 0, len(history)*2)
	for _, turn := range history {
		lines = append(lines, "Cliente: "+turn.Question)
		lines = append(lines, "Asistente: "+turn.Answer)
	}
	return strings.Join(lines, "\n")
}
