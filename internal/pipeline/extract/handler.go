// internal/pipeline/extract/handler.go
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"product-advisor/internal/common/logger"
	"product-advisor/internal/common/validation"
	"product-advisor/internal/llm"
	"product-advisor/internal/models"
)

const TaskType = "parameter-extractor"

// Handler turns an enriched query into a structured parameter record via a
// single extraction completion. Extraction is best-effort: any failure
// (transport, malformed JSON, schema violation) degrades to the default
// general_info record instead of erroring the turn.
type Handler struct {
	config    *Config
	chatter   llm.Chatter
	validator *validation.Validator
	logger    logger.Logger
}

func NewHandler(config *Config, chatter llm.Chatter, validator *validation.Validator, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		chatter:   chatter,
		validator: validator,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute extracts query parameters. attributeKeys is the catalog's known
// attribute-key inventory, listed in the prompt so the model picks real keys.
func (h *Handler) Execute(ctx context.Context, enrichedQuery string, attributeKeys []string) *models.QueryParameters {
	keyList := make([]string, len(attributeKeys))
	for i, k := range attributeKeys {
		keyList[i] = `"` + k + `"`
	}

	resp, err := h.chatter.Complete(ctx, llm.Request{
		Prompt:      fmt.Sprintf(extractionPromptTemplate, strings.Join(keyList, ", "), enrichedQuery),
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
		Extra: map[string]interface{}{
			"chat_template_kwargs": map[string]interface{}{"enable_thinking": false},
		},
	})
	if err != nil {
		h.logger.Warn("Extraction call failed, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return models.DefaultParameters()
	}

	params, err := h.parse(resp)
	if err != nil {
		h.logger.Warn("Extraction response unusable, using defaults", map[string]interface{}{
			"error":    err.Error(),
			"response": resp,
		})
		return models.DefaultParameters()
	}
	return params
}

// parse lowercases the completion, strips code fences, validates the wire
// shape and converts it into the typed record.
func (h *Handler) parse(resp string) (*models.QueryParameters, error) {
	clean := strings.ToLower(strings.TrimSpace(resp))
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := h.validator.ValidateQueryParameters([]byte(clean)); err != nil {
		return nil, err
	}

	params := &models.QueryParameters{
		Intent:                models.IntentGeneralInfo,
		Domain:                stringList(raw["domain"]),
		Category:              stringList(raw["category"]),
		Products:              stringList(raw["products"]),
		Brands:                stringList(raw["brands"]),
		ComparativeAttributes: stringList(raw["comparative_attributes"]),
	}

	if intent, ok := raw["intent"].(string); ok && models.KnownIntent(intent) {
		params.Intent = models.Intent(intent)
	}

	if q, ok := raw["web_search_query"].(string); ok {
		params.WebSearchQuery = strings.TrimSpace(q)
	}

	if pr, ok := raw["price_range"].(map[string]interface{}); ok {
		params.PriceRange = &models.PriceRange{
			MinPrice: floatValue(pr["min_price"]),
			MaxPrice: floatValue(pr["max_price"]),
		}
	}

	if attrs, ok := raw["attributes"].([]interface{}); ok {
		for _, item := range attrs {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			filter := models.AttributeFilter{}
			for k, v := range m {
				filter[NormalizeAttributeKey(k)] = stringValue(v)
			}
			if len(filter) > 0 {
				params.Attributes = append(params.Attributes, filter)
			}
		}
	}

	return params, nil
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(fmt.Sprint(item))
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func floatValue(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}

// stringValue coerces a decoded JSON value to text, keeping numbers in plain
// decimal form rather than %v's exponent notation.
func stringValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
