// internal/pipeline/enrich/handler_test.go
package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"product-advisor/internal/common/logger"
	"product-advisor/internal/llm"
	"product-advisor/internal/models"
)

type stubChatter struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (s *stubChatter) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, req.Prompt)
	return s.response, s.err
}

func TestExecuteEmptyHistorySkipsModel(t *testing.T) {
	chatter := &stubChatter{response: "should not be used"}
	handler := NewHandler(LoadConfig(), chatter, logger.NewTestLogger(t))

	result := handler.Execute(context.Background(), "Giá iPhone 15 bao nhiêu?", nil)
	assert.Equal(t, "Giá iPhone 15 bao nhiêu?", result)
	assert.Zero(t, chatter.calls)
}

func TestExecuteRewritesWithHistory(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleUser, Content: "Cho tôi biết về iPhone 15"},
		{Role: models.RoleAssistant, Content: "iPhone 15 là điện thoại cao cấp của Apple..."},
	}

	chatter := &stubChatter{response: "Giá iPhone 15 bao nhiêu?"}
	handler := NewHandler(LoadConfig(), chatter, logger.NewTestLogger(t))

	result := handler.Execute(context.Background(), "Giá của nó bao nhiêu?", history)
	assert.Equal(t, "Giá iPhone 15 bao nhiêu?", result)
	assert.Contains(t, chatter.prompts[0], "iPhone 15 là điện thoại cao cấp")
	assert.Contains(t, chatter.prompts[0], `Câu hỏi hiện tại: "Giá của nó bao nhiêu?"`)
}

func TestExecuteFallsBackOnError(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleUser, Content: "Cho tôi biết về iPhone 15"},
		{Role: models.RoleAssistant, Content: "..."},
	}

	chatter := &stubChatter{err: errors.New("timeout")}
	handler := NewHandler(LoadConfig(), chatter, logger.NewTestLogger(t))

	result := handler.Execute(context.Background(), "Giá của nó bao nhiêu?", history)
	assert.Equal(t, "Giá của nó bao nhiêu?", result)
}

func TestExecuteFallsBackOnEmptyRewrite(t *testing.T) {
	history := []models.ConversationTurn{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello"},
	}

	chatter := &stubChatter{response: "   "}
	handler := NewHandler(LoadConfig(), chatter, logger.NewTestLogger(t))

	result := handler.Execute(context.Background(), "Giá của nó?", history)
	assert.Equal(t, "Giá của nó?", result)
}
