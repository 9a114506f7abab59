// internal/pipeline/scope/handler.go
package scope

import (
	"context"
	"fmt"
	"strings"

	"product-advisor/internal/common/logger"
	"product-advisor/internal/llm"
)

const TaskType = "scope-classifier"

const (
	InScope    = "in_scope"
	OutOfScope = "out_of_scope"
)

// Handler decides whether a user question belongs to the consumer-product
// domain. Any failure of the underlying model fails open to in_scope so a
// broken classifier never blocks legitimate questions.
type Handler struct {
	config  *Config
	chatter llm.Chatter
	logger  logger.Logger
}

func NewHandler(config *Config, chatter llm.Chatter, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		chatter: chatter,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

const classifyPromptTemplate = `
    Phân loại câu hỏi sau đây chỉ bằng một trong hai từ: 'in_scope' (nếu thuộc lĩnh vực tiêu dùng và tư vấn sản phẩm) hoặc 'out_of_scope' (nếu ngoài lĩnh vực).
    Câu hỏi: "%s"
    Phân loại:
    `

// Execute classifies the raw user query. The decision rule is asymmetric:
// any completion containing "in_scope" counts as in scope, everything else
// is out of scope.
func (h *Handler) Execute(ctx context.Context, userQuery string) string {
	resp, err := h.chatter.Complete(ctx, llm.Request{
		Prompt:      fmt.Sprintf(classifyPromptTemplate, userQuery),
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
		Extra: map[string]interface{}{
			"chat_template_kwargs": map[string]interface{}{"enable_thinking": false},
		},
	})
	if err != nil {
		h.logger.Warn("Scope classification failed, defaulting to in_scope", map[string]interface{}{
			"error": err.Error(),
		})
		return InScope
	}

	result := strings.ToLower(strings.TrimSpace(resp))
	if strings.Contains(result, InScope) {
		return InScope
	}
	return OutOfScope
}
