// internal/pipeline/enrich/handler.go
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"product-advisor/internal/common/logger"
	"product-advisor/internal/llm"
	"product-advisor/internal/models"
)

const TaskType = "context-enricher"

// Handler rewrites the current question into a standalone one using the
// conversation history: ambiguous references ("nó", "cái đó", "sản phẩm
// trên") are replaced with the concrete product names mentioned earlier.
// With no history, or on any model failure, the original question passes
// through unchanged.
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

const enrichmentPromptTemplate = `
        Bạn là hệ thống xử lý ngôn ngữ.
        Dựa trên lịch sử hội thoại sau, hãy viết lại câu hỏi hiện tại của người dùng sao cho:
        - Câu hỏi trở thành **độc lập và hoàn chỉnh**, có thể hiểu được mà **không cần nhìn vào lịch sử**.
        - Bạn phải **thay các từ mơ hồ** như "nó", "cái đó", "sản phẩm trên", "các điện thoại trên" bằng **danh sách tên sản phẩm hoặc mô tả cụ thể** có trong hội thoại.
        - Nếu có nhiều sản phẩm, hãy **liệt kê tất cả các tên sản phẩm** đã xuất hiện trong hội thoại vào câu hỏi.
        - Tuyệt đối **không thêm thông tin mới** ngoài những gì đã có trong hội thoại.
        - **Luôn luôn viết lại câu hỏi theo yêu cầu trên (không được giữ nguyên).**

        Lịch sử hội thoại:
        %s

        Câu hỏi hiện tại: "%s"

        Câu hỏi đã làm giàu:
        `

// Execute returns the standalone rewrite of userQuery. The history slice is
// the already-windowed tail of the conversation.
func (h *Handler) Execute(ctx context.Context, userQuery string, history []models.ConversationTurn) string {
	if len(history) == 0 {
		return userQuery
	}

	historyJSON, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		h.logger.Warn("History serialization failed, keeping original query", map[string]interface{}{
			"error": err.Error(),
		})
		return userQuery
	}

	resp, err := h.chatter.Complete(ctx, llm.Request{
		Prompt:      fmt.Sprintf(enrichmentPromptTemplate, string(historyJSON), userQuery),
		MaxTokens:   h.config.MaxTokens,
		Temperature: h.config.Temperature,
		Extra: map[string]interface{}{
			"chat_template_kwargs": map[string]interface{}{"enable_thinking": false},
		},
	})
	if err != nil {
		h.logger.Warn("Enrichment failed, keeping original query", map[string]interface{}{
			"error": err.Error(),
		})
		return userQuery
	}

	enriched := strings.TrimSpace(resp)
	if enriched == "" {
		return userQuery
	}
	return enriched
}
