package model

// PropertyType is a canonical property category extracted from free text
type PropertyType string

const (
	PropertyCasa         PropertyType = "casa"
	PropertyDepartamento PropertyType = "departamento"
	PropertyTerreno      PropertyType = "terreno"
	PropertyOficina      PropertyType = "oficina"
)

// Urgency is the three-tier urgency classification of a customer message
type Urgency string

const (
	UrgencyAlta  Urgency = "alta"
	UrgencyMedia Urgency = "media"
	UrgencyBaja  Urgency = "baja"
)

// BudgetRange is an inclusive price band in bolivianos.
// Min <= Max holds for every range the extractor produces.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ClientPreferences represents structured preferences extracted from a customer
// message. Urgency is always set; every other field defaults to absent/empty.
type ClientPreferences struct {
	BudgetRange         *BudgetRange  `json:"budget_range,omitempty"`
	LocationPreferences []string      `json:"location_preferences"`
	PropertyType        *PropertyType `json:"property_type,omitempty"`
	Bedrooms            *int          `json:"bedrooms,omitempty"`
	Bathrooms           *int          `json:"bathrooms,omitempty"`
	AdditionalFeatures  []string      `json:"additional_features"`
	Urgency             Urgency       `json:"urgency"`
}
