// internal/models/product.go
package models

import (
	"regexp"
	"strconv"
	"strings"
)

// Product is one row of the consumer-product catalog. The catalog is loaded
// once at startup and held read-only for the process lifetime; Product values
// are never mutated after loading.
//
// JSON tags match the column names of the source table so that serialized
// products in prompts read the same as the stored data.
type Product struct {
	ID          int64                  `json:"ma_san_pham"`
	Domain      string                 `json:"linh_vuc"`
	Category    string                 `json:"danh_muc"`
	Name        string                 `json:"ten"`
	Description string                 `json:"mo_ta"`
	Price       string                 `json:"gia"`
	Brand       string                 `json:"thuong_hieu"`
	Benefits    string                 `json:"loi_ich"`
	Advice      string                 `json:"loi_khuyen"`
	Rating      string                 `json:"danh_gia"`
	Attributes  map[string]interface{} `json:"thuoc_tinh"`
}

var priceDigits = regexp.MustCompile(`\d+`)

// PriceValue parses the raw price field into a number. Grouping separators
// are stripped and the first digit run is taken; anything unparsable counts
// as zero so price filtering proceeds instead of aborting.
func (p Product) PriceValue() float64 {
	raw := strings.NewReplacer(".", "", ",", "").Replace(p.Price)
	m := priceDigits.FindString(raw)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// ScoredProduct is a retrieval hit: a catalog product with a non-negative
// match score (summed fuzzy attribute score or semantic similarity).
type ScoredProduct struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// WebSnippet is one external search result used as grounding context when
// internal retrieval comes back empty.
type WebSnippet struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"href"`
}

// Format renders the snippet the way it is embedded into prompts.
func (s WebSnippet) Format() string {
	return "- " + s.Title + ": " + s.Body + " (nguồn: " + s.URL + ")"
}
