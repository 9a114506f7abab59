// internal/pipeline/generate/handler.go
package generate

import (
	"context"

	"product-advisor/internal/common/errors"
	"product-advisor/internal/common/logger"
	"product-advisor/internal/common/metrics"
	"product-advisor/internal/llm"
	"product-advisor/internal/models"
)

const TaskType = "response-generator"

// Handler runs the final completion. Sampling parameters follow the
// extracted intent even when the composed prompt is the fallback template.
// Any model failure degrades to a fixed apologetic reply so the user always
// gets conversational text.
type Handler struct {
	config  *Config
	chatter llm.Chatter
	cache   *llm.ResponseCache
	logger  logger.Logger
}

func NewHandler(config *Config, chatter llm.Chatter, cache *llm.ResponseCache, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		chatter: chatter,
		cache:   cache,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

var temperatureByIntent = map[models.Intent]float64{
	models.IntentPrice:        0.1,
	models.IntentReviewRating: 0.2,
	models.IntentCompare:      0.7,
	models.IntentAdvice:       0.8,
}

var maxTokensByIntent = map[models.Intent]int{
	models.IntentPrice:   100,
	models.IntentAdvice:  256,
	models.IntentCompare: 512,
}

const (
	defaultTemperature = 0.6
	defaultMaxTokens   = 1000
)

// Execute produces the reply text for a composed prompt.
func (h *Handler) Execute(ctx context.Context, prompt string, intent models.Intent) string {
	if cached, ok := h.cache.Get(ctx, prompt, string(intent)); ok {
		metrics.GenerationCacheHits.WithLabelValues("hit").Inc()
		h.logger.Debug("Response cache hit", map[string]interface{}{"intent": string(intent)})
		return cached
	}
	metrics.GenerationCacheHits.WithLabelValues("miss").Inc()

	temp, ok := temperatureByIntent[intent]
	if !ok {
		temp = defaultTemperature
	}
	maxTokens, ok := maxTokensByIntent[intent]
	if !ok {
		maxTokens = defaultMaxTokens
	}

	reply, err := h.chatter.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temp,
		TopP:        h.config.TopP,
		Extra: map[string]interface{}{
			"top_k":                h.config.TopK,
			"chat_template_kwargs": map[string]interface{}{"enable_thinking": false},
		},
	})
	if err != nil {
		h.logger.Error("Generation failed", map[string]interface{}{
			"intent": string(intent),
			"error":  err.Error(),
		})
		return errors.MsgGenerationFailed
	}

	h.cache.Set(ctx, prompt, string(intent), reply)
	return reply
}
