package service

import (
	"context"
	"fmt"
	"strings"

	"asistente/internal/model"

	"go.uber.org/zap"
)

// PropertyStore is the interface for property record lookups
type PropertyStore interface {
	GetPropertyByID(ctx context.Context, id int64) (*model.Property, error)
}

// PropertyService generates customer-facing descriptions for properties
type PropertyService struct {
	store  PropertyStore
	chat   Chatter
	logger *zap.Logger
}

// NewPropertyService creates a new property description service
func NewPropertyService(store PropertyStore, chat Chatter, logger *zap.Logger) *PropertyService {
	return &PropertyService{store: store, chat: chat, logger: logger}
}

// Describe looks up a property and generates a friendly Spanish description.
// A nil property means the ID is unknown. When the generative backend is
// disabled the property is returned with an empty description.
func (s *PropertyService) Describe(ctx context.Context, id int64) (*model.Property, string, error) {
	property, err := s.store.GetPropertyByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get property: %w", err)
	}
	if property == nil {
		return nil, "", nil
	}

	if !s.chat.IsEnabled() {
		s.logger.Warn("generative backend disabled, returning property without description",
			zap.Int64("property_id", id))
		return property, "", nil
	}

	resp, err := s.chat.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "user", Content: buildDescriptionPrompt(property)},
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("description generation failed: %w", err)
	}

	description, err := resp.FirstChoice()
	if err != nil {
		return nil, "", err
	}

	return property, description, nil
}

// buildDescriptionPrompt renders the property facts into a generation prompt
func buildDescriptionPrompt(p *model.Property) string {
	var b strings.Builder

	b.WriteString("Genera una descripción atractiva y profesional para esta propiedad inmobiliaria:\n")
	fmt.Fprintf(&b, "- Nombre: %s\n", p.Name)
	if p.Price != nil {
		fmt.Fprintf(&b, "- Precio: %.0f Bs\n", *p.Price)
	}
	if p.Location != nil {
		fmt.Fprintf(&b, "- Ubicación: %s\n", *p.Location)
	}
	if p.Bedrooms != nil {
		fmt.Fprintf(&b, "- Dormitorios: %d\n", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		fmt.Fprintf(&b, "- Baños: %d\n", *p.Bathrooms)
	}
	if p.AreaM2 != nil {
		fmt.Fprintf(&b, "- Superficie: %.0f m²\n", *p.AreaM2)
	}
	if len(p.Features) > 0 {
		fmt.Fprintf(&b, "- Características: %s\n", strings.Join(p.Features, ", "))
	}
	b.WriteString("\nLa descripción debe ser en español, amigable y resaltar los puntos fuertes.")

	return b.String()
}
