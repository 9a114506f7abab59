// internal/pipeline/scope/handler_test.go
package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"product-advisor/internal/common/logger"
	"product-advisor/internal/llm"
)

type stubChatter struct {
	response string
	err      error
	prompts  []string
}

func (s *stubChatter) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.prompts = append(s.prompts, req.Prompt)
	return s.response, s.err
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		expected string
	}{
		{
			name:     "in scope answer",
			response: "in_scope",
			expected: InScope,
		},
		{
			name:     "in scope with noise around the label",
			response: "Phân loại: IN_SCOPE.",
			expected: InScope,
		},
		{
			name:     "out of scope answer",
			response: "out_of_scope",
			expected: OutOfScope,
		},
		{
			name:     "unparseable answer counts as out of scope",
			response: "tôi không chắc",
			expected: OutOfScope,
		},
		{
			name:     "model failure fails open",
			err:      errors.New("connection refused"),
			expected: InScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chatter := &stubChatter{response: tt.response, err: tt.err}
			handler := NewHandler(LoadConfig(), chatter, logger.NewTestLogger(t))

			result := handler.Execute(context.Background(), "Giá iPhone 15 bao nhiêu?")
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestExecutePromptContainsQuery(t *testing.T) {
	chatter := &stubChatter{response: "in_scope"}
	handler := NewHandler(LoadConfig(), chatter, logger.NewTestLogger(t))

	handler.Execute(context.Background(), "Giá iPhone 15 bao nhiêu?")
	assert.Len(t, chatter.prompts, 1)
	assert.Contains(t, chatter.prompts[0], `Câu hỏi: "Giá iPhone 15 bao nhiêu?"`)
}
