// internal/pipeline/retrieve/filter.go
package retrieve

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"product-advisor/internal/catalog"
	"product-advisor/internal/models"
)

// fuzzyMatchThreshold is the minimum fuzz ratio (0-100) for an extracted
// attribute constraint to count as matching a stored attribute.
const fuzzyMatchThreshold = 60

// filterByConditions applies the price bound and fuzzy attribute constraints
// to candidates, scores survivors and returns the best MaxResults, stable on
// catalog order for ties.
//
// Every constraint must match some stored attribute (AND semantics); the
// per-constraint best ratio is summed into the product score.
func (h *Handler) filterByConditions(candidates []models.Product, params *models.QueryParameters) []models.Product {
	minPrice, maxPrice := params.MinPrice(), params.MaxPrice()

	var scored []models.ScoredProduct
	for _, p := range candidates {
		price := p.PriceValue()
		if price < minPrice || price > maxPrice {
			continue
		}

		score, ok := scoreAttributes(p, params.Attributes)
		if !ok {
			continue
		}
		scored = append(scored, models.ScoredProduct{Product: p, Score: score})
	}

	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })

	limit := h.config.MaxResults
	if limit <= 0 || limit > len(scored) {
		limit = len(scored)
	}
	results := make([]models.Product, 0, limit)
	for _, sp := range scored[:limit] {
		results = append(results, sp.Product)
	}
	return results
}

// scoreAttributes checks every requested constraint against the product's
// stored attributes. Each constraint is rendered "key value" and compared
// against every stored "key value" pair; ratios below the threshold do not
// count. Returns the summed best ratios and whether all constraints matched.
func scoreAttributes(p models.Product, constraints []models.AttributeFilter) (float64, bool) {
	var total float64
	for _, constraint := range constraints {
		for key, value := range constraint {
			wanted := strings.ToLower(key + " " + value)

			best := 0
			for dbKey, dbValue := range p.Attributes {
				stored := strings.ToLower(dbKey + " " + catalog.FlattenAttributeValue(dbValue))
				if ratio := fuzzy.Ratio(wanted, stored); ratio >= fuzzyMatchThreshold && ratio > best {
					best = ratio
				}
			}
			if best == 0 {
				return 0, false
			}
			total += float64(best)
		}
	}
	return total, true
}
