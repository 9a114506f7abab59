// internal/models/query.go
package models

import "math"

// Intent is the closed-set classification of what the user wants. It drives
// the retrieval strategy, the prompt template and the sampling parameters.
type Intent string

const (
	IntentPrice         Intent = "price"
	IntentCompare       Intent = "compare"
	IntentAdvice        Intent = "advice"
	IntentProductSearch Intent = "product_search"
	IntentReviewRating  Intent = "review_rating"
	IntentBrandOrigin   Intent = "brand_origin"
	IntentGeneralInfo   Intent = "general_info"
	IntentOutOfScope    Intent = "out_of_scope"

	// IntentFallback is not part of the extraction set. The composer switches
	// to it when neither internal nor web context exists for the query.
	IntentFallback Intent = "fallback"
)

// KnownIntent reports whether s is one of the extractable intents.
func KnownIntent(s string) bool {
	switch Intent(s) {
	case IntentPrice, IntentCompare, IntentAdvice, IntentProductSearch,
		IntentReviewRating, IntentBrandOrigin, IntentGeneralInfo, IntentOutOfScope:
		return true
	}
	return false
}

// PriceRange is an inclusive price constraint. A zero MaxPrice means
// unbounded above.
type PriceRange struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}

// AttributeFilter is a single requested attribute constraint, one key to one
// value. Keys are diacritic-free snake_case.
type AttributeFilter map[string]string

// QueryParameters is the structured record extracted from an enriched query.
// A nil slice or nil pointer means "unconstrained": the corresponding filter
// is skipped entirely. An empty (non-nil) slice still participates downstream
// as "no values matched".
type QueryParameters struct {
	Intent                Intent            `json:"intent"`
	Domain                []string          `json:"domain,omitempty"`
	Category              []string          `json:"category,omitempty"`
	Products              []string          `json:"products,omitempty"`
	Brands                []string          `json:"brands,omitempty"`
	PriceRange            *PriceRange       `json:"price_range,omitempty"`
	Attributes            []AttributeFilter `json:"attributes,omitempty"`
	ComparativeAttributes []string          `json:"comparative_attributes,omitempty"`
	WebSearchQuery        string            `json:"web_search_query,omitempty"`
}

// DefaultParameters is the degrade-to-safe record used whenever extraction
// fails. It is a valid variant, not an error state.
func DefaultParameters() *QueryParameters {
	return &QueryParameters{Intent: IntentGeneralInfo}
}

// MinPrice returns the lower price bound, zero when unconstrained.
func (q *QueryParameters) MinPrice() float64 {
	if q.PriceRange == nil {
		return 0
	}
	return q.PriceRange.MinPrice
}

// MaxPrice returns the upper price bound, +Inf when unconstrained.
func (q *QueryParameters) MaxPrice() float64 {
	if q.PriceRange == nil || q.PriceRange.MaxPrice <= 0 {
		return math.Inf(1)
	}
	return q.PriceRange.MaxPrice
}

// HasStructuredFilters reports whether any catalog-side filter is present:
// brands, domain, category, attributes or a price bound.
func (q *QueryParameters) HasStructuredFilters() bool {
	return len(q.Brands) > 0 || len(q.Domain) > 0 || len(q.Category) > 0 ||
		len(q.Attributes) > 0 || q.PriceRange != nil
}
