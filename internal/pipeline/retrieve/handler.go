// internal/pipeline/retrieve/handler.go
package retrieve

import (
	"context"
	"strings"

	"product-advisor/internal/catalog"
	"product-advisor/internal/common/logger"
	"product-advisor/internal/common/metrics"
	"product-advisor/internal/index"
	"product-advisor/internal/models"
)

const TaskType = "data-retriever"

const (
	StrategyExactName  = "exact_name"
	StrategyStructured = "structured_filter"
	StrategySemantic   = "semantic"
)

// Catalog is the read surface of the loaded product catalog.
type Catalog interface {
	Products() []models.Product
	ByID(id int64) (models.Product, bool)
}

// Searcher is the semantic index surface used by the fallback tier.
type Searcher interface {
	Query(ctx context.Context, text string, topK int, threshold float64) ([]index.Match, error)
}

// Handler resolves an enriched query against the catalog through an ordered
// strategy chain. Exactly one strategy claims each query:
//
//  1. exact name match     — claims when the extraction carries product names
//                            and at least one matches; its filtered result is
//                            final even when empty.
//  2. structured filter    — claims when any catalog-side filter is present.
//  3. semantic fallback    — claims everything else.
type Handler struct {
	config *Config
	store  Catalog
	index  Searcher
	logger logger.Logger
}

func NewHandler(config *Config, store Catalog, idx Searcher, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  store,
		index:  idx,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute returns the retrieved products, best matches first, capped at the
// configured maximum for the filter tiers.
func (h *Handler) Execute(ctx context.Context, enrichedQuery string, params *models.QueryParameters) ([]models.Product, error) {
	// Tier 1: exact name match.
	if len(params.Products) > 0 {
		found := h.matchByName(params.Products)
		if len(found) > 0 {
			metrics.RetrievalStrategyTotal.WithLabelValues(StrategyExactName).Inc()
			results := h.filterByConditions(found, params)
			h.logger.Info("Exact name retrieval", map[string]interface{}{
				"candidates": len(found),
				"results":    len(results),
			})
			return results, nil
		}
		h.logger.Debug("No exact name match, trying structured filters", map[string]interface{}{
			"names": params.Products,
		})
	}

	// Tier 2: structured filters over the whole catalog.
	if params.HasStructuredFilters() {
		metrics.RetrievalStrategyTotal.WithLabelValues(StrategyStructured).Inc()
		candidates := h.store.Products()
		candidates = filterBySubstring(candidates, params.Brands, func(p models.Product) string { return p.Brand })
		candidates = filterBySubstring(candidates, params.Domain, func(p models.Product) string { return p.Domain })
		candidates = filterBySubstring(candidates, params.Category, func(p models.Product) string { return p.Category })
		results := h.filterByConditions(candidates, params)
		h.logger.Info("Structured retrieval", map[string]interface{}{
			"candidates": len(candidates),
			"results":    len(results),
		})
		return results, nil
	}

	// Tier 3: semantic fallback over the corpus index.
	metrics.RetrievalStrategyTotal.WithLabelValues(StrategySemantic).Inc()
	matches, err := h.index.Query(ctx, enrichedQuery, h.config.SemanticTopK, h.config.SemanticThreshold)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var results []models.Product
	for _, m := range matches {
		id, ok := catalog.ExtractProductID(m.Document)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, found := h.store.ByID(id); found {
			results = append(results, p)
		}
	}
	h.logger.Info("Semantic retrieval", map[string]interface{}{
		"matches": len(matches),
		"results": len(results),
	})
	return results, nil
}

// matchByName returns products whose name contains any requested name,
// case-insensitive.
func (h *Handler) matchByName(names []string) []models.Product {
	var found []models.Product
	for _, p := range h.store.Products() {
		productName := strings.ToLower(p.Name)
		for _, name := range names {
			if strings.Contains(productName, strings.ToLower(name)) {
				found = append(found, p)
				break
			}
		}
	}
	return found
}

// filterBySubstring keeps products whose field contains any wanted value,
// case-insensitive. An empty wanted list keeps everything.
func filterBySubstring(products []models.Product, wanted []string, field func(models.Product) string) []models.Product {
	if len(wanted) == 0 {
		return products
	}
	var out []models.Product
	for _, p := range products {
		val := strings.ToLower(field(p))
		for _, w := range wanted {
			if strings.Contains(val, strings.ToLower(w)) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
