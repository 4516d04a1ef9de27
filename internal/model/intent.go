package model

// IntentCategory represents the inferred purpose of a customer message
type IntentCategory string

const (
	IntentVisitRequest      IntentCategory = "visit_request"
	IntentPriceQuery        IntentCategory = "price_query"
	IntentLocationQuery     IntentCategory = "location_query"
	IntentAvailabilityQuery IntentCategory = "availability_query"
	IntentGeneric           IntentCategory = "generic"
)

// ContextAnswer represents the outcome of a retrieval-augmented answer attempt
type ContextAnswer struct {
	Answer      string `json:"answer"`
	UsedContext bool   `json:"used_context"`
}

// IndexOverview describes the loaded state of the document index
type IndexOverview struct {
	TotalChunks int      `json:"total_chunks"`
	PDFs        []string `json:"pdfs"`
}
