package service

import (
	"regexp"
	"strconv"
	"strings"

	"asistente/internal/model"

	"go.uber.org/zap"
)

// Budget patterns are tried in order; the first one that matches wins and the
// remaining patterns are not consulted. The explicit "entre X y Y" range goes
// first so that "entre 500 y 800 mil" is read as a range and not as a single
// "800 mil" amount. It is the only pattern with two capture groups.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`entre\s*(\d+\.?\d*)\s*y\s*(\d+\.?\d*)`),
	regexp.MustCompile(`(\d+\.?\d*)\s*(?:mil|k)\s*(?:bs|bolivianos)?`),
	regexp.MustCompile(`(\d{4,})\s*(?:bs|bolivianos)?`),
}

var (
	bedroomPattern  = regexp.MustCompile(`(\d+)\s*(?:dormitorio|habitacion|cuarto)`)
	bathroomPattern = regexp.MustCompile(`(\d+)\s*baño`)
)

// knownLocations is the fixed zone vocabulary; matches are collected in this
// order, not in textual occurrence order.
var knownLocations = []string{"equipetrol", "zona norte", "zona sur", "centro", "urubo", "la guardia"}

// propertyTypeRules are evaluated in priority order; the first substring hit wins.
var propertyTypeRules = []struct {
	keywords []string
	propType model.PropertyType
}{
	{[]string{"casa"}, model.PropertyCasa},
	{[]string{"departamento", "depto"}, model.PropertyDepartamento},
	{[]string{"terreno"}, model.PropertyTerreno},
	{[]string{"oficina"}, model.PropertyOficina},
}

// featureRules maps keywords to canonical amenity labels. Unlike property type
// the rules are not mutually exclusive; every hit contributes, in this order.
var featureRules = []struct {
	keyword string
	label   string
}{
	{"piscina", "piscina"},
	{"garage", "garage"},
	{"jardin", "jardín"},
	{"parrillero", "parrillero"},
	{"seguridad", "seguridad 24/7"},
	{"amoblado", "amoblado"},
	{"balcon", "balcón"},
}

var (
	urgencyHighWords   = []string{"urgente", "pronto", "ya", "inmediato", "hoy"}
	urgencyMediumWords = []string{"próximo mes", "próxima semana"}
)

// PreferenceExtractor parses customer messages into structured property
// preferences using ordered pattern rules. It is stateless: the same input
// always produces the same output.
type PreferenceExtractor struct {
	logger *zap.Logger
}

// NewPreferenceExtractor creates a new preference extractor
func NewPreferenceExtractor(logger *zap.Logger) *PreferenceExtractor {
	return &PreferenceExtractor{logger: logger}
}

// Extract parses a raw customer message into a ClientPreferences record.
// Every field is extracted independently from the lower-cased query; substring
// collisions (e.g. "depto" inside a longer word) are accepted.
func (e *PreferenceExtractor) Extract(query string) *model.ClientPreferences {
	queryLower := strings.ToLower(query)

	prefs := &model.ClientPreferences{
		BudgetRange:         extractBudget(queryLower),
		LocationPreferences: extractLocations(queryLower),
		PropertyType:        extractPropertyType(queryLower),
		Bedrooms:            extractCount(queryLower, bedroomPattern),
		Bathrooms:           extractCount(queryLower, bathroomPattern),
		AdditionalFeatures:  extractFeatures(queryLower),
		Urgency:             extractUrgency(queryLower),
	}

	e.logger.Debug("preferences extracted",
		zap.String("query", query),
		zap.Strings("locations", prefs.LocationPreferences),
		zap.String("urgency", string(prefs.Urgency)),
	)

	return prefs
}

// extractBudget tries the budget patterns in order. A single matched amount is
// scaled by 1000 when "mil" or "k" appears anywhere in the query and widened
// into a ±20% band; an explicit "entre X y Y" range is used as given, with each
// bound independently scaled.
func extractBudget(queryLower string) *model.BudgetRange {
	scale := 1.0
	if strings.Contains(queryLower, "mil") || strings.Contains(queryLower, "k") {
		scale = 1000.0
	}

	for _, pattern := range budgetPatterns {
		m := pattern.FindStringSubmatch(queryLower)
		if m == nil {
			continue
		}

		if len(m) == 3 {
			// Explicit range: both bounds as given, no band
			min, err1 := strconv.ParseFloat(m[1], 64)
			max, err2 := strconv.ParseFloat(m[2], 64)
			if err1 != nil || err2 != nil {
				return nil
			}
			min *= scale
			max *= scale
			if min > max {
				min, max = max, min
			}
			return &model.BudgetRange{Min: min, Max: max}
		}

		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		amount *= scale
		return &model.BudgetRange{Min: amount * 0.8, Max: amount * 1.2}
	}

	return nil
}

// extractLocations collects every known zone mentioned in the query,
// preserving the vocabulary order
func extractLocations(queryLower string) []string {
	locations := []string{}
	for _, loc := range knownLocations {
		if strings.Contains(queryLower, loc) {
			locations = append(locations, loc)
		}
	}
	return locations
}

// extractPropertyType returns the highest-priority property type mentioned
func extractPropertyType(queryLower string) *model.PropertyType {
	for _, rule := range propertyTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(queryLower, kw) {
				propType := rule.propType
				return &propType
			}
		}
	}
	return nil
}

// extractCount returns the first digit sequence captured by the pattern
func extractCount(queryLower string, pattern *regexp.Regexp) *int {
	m := pattern.FindStringSubmatch(queryLower)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// extractFeatures collects canonical labels for every amenity keyword present
func extractFeatures(queryLower string) []string {
	features := []string{}
	for _, rule := range featureRules {
		if strings.Contains(queryLower, rule.keyword) {
			features = append(features, rule.label)
		}
	}
	return features
}

// extractUrgency classifies urgency into alta/media/baja. High-urgency words
// win over near-term phrases when both are present; baja is the default.
func extractUrgency(queryLower string) model.Urgency {
	for _, word := range urgencyHighWords {
		if strings.Contains(queryLower, word) {
			return model.UrgencyAlta
		}
	}
	for _, phrase := range urgencyMediumWords {
		if strings.Contains(queryLower, phrase) {
			return model.UrgencyMedia
		}
	}
	return model.UrgencyBaja
}
