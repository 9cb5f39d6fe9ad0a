package domain

// QueryType classifies the intent of a search query.
type QueryType string

const (
	// QueryFileSearch looks for objects, usually by extension or path.
	QueryFileSearch QueryType = "file_search"
	// QueryPackageSearch looks for a package by namespace/name.
	QueryPackageSearch QueryType = "package_search"
	// QueryAnalytical carries measurable constraints (sizes, dates).
	QueryAnalytical QueryType = "analytical"
	// QueryNaturalLanguage is free text with no stronger signal.
	QueryNaturalLanguage QueryType = "natural_language"
)

// QueryAnalysis is the derived classification of a query. It is computed
// per request and never persisted.
type QueryAnalysis struct {
	// QueryType is the winning intent classification.
	QueryType QueryType `json:"query_type"`

	// Confidence is the fraction of signal categories that matched,
	// clamped to [0, 1]. Zero for empty input.
	Confidence float64 `json:"confidence"`

	// Keywords are the residual search terms after filter phrases and
	// filler words are stripped.
	Keywords []string `json:"keywords"`

	// Filters are the constraints extracted from the query text.
	Filters Filters `json:"filters"`
}
