// internal/pipeline/generate/handler_test.go
package generate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "product-advisor/internal/common/errors"
	"product-advisor/internal/common/logger"
	"product-advisor/internal/llm"
	"product-advisor/internal/models"
)

type stubChatter struct {
	response string
	err      error
	calls    int
	requests []llm.Request
}

func (s *stubChatter) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.calls++
	s.requests = append(s.requests, req)
	return s.response, s.err
}

func newHandler(t *testing.T, chatter llm.Chatter, cache *llm.ResponseCache) *Handler {
	t.Helper()
	return NewHandler(LoadConfig(), chatter, cache, logger.NewTestLogger(t))
}

func TestExecuteSamplingByIntent(t *testing.T) {
	tests := []struct {
		intent      models.Intent
		temperature float64
		maxTokens   int
	}{
		{models.IntentPrice, 0.1, 100},
		{models.IntentReviewRating, 0.2, 1000},
		{models.IntentCompare, 0.7, 512},
		{models.IntentAdvice, 0.8, 256},
		{models.IntentGeneralInfo, 0.6, 1000},
		{models.IntentFallback, 0.6, 1000},
	}

	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			chatter := &stubChatter{response: "trả lời"}
			handler := newHandler(t, chatter, nil)

			handler.Execute(context.Background(), "prompt", tt.intent)
			require.Len(t, chatter.requests, 1)
			req := chatter.requests[0]
			assert.Equal(t, tt.temperature, req.Temperature)
			assert.Equal(t, tt.maxTokens, req.MaxTokens)
			assert.Equal(t, 0.95, req.TopP)
			assert.Equal(t, 20, req.Extra["top_k"])
		})
	}
}

func TestExecuteDegradesOnFailure(t *testing.T) {
	chatter := &stubChatter{err: errors.New("connection refused")}
	handler := newHandler(t, chatter, nil)

	reply := handler.Execute(context.Background(), "prompt", models.IntentGeneralInfo)
	assert.Equal(t, commonerrors.MsgGenerationFailed, reply)
}

func TestExecuteUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := llm.NewResponseCache(client, time.Minute, logger.NewTestLogger(t))

	chatter := &stubChatter{response: "trả lời từ mô hình"}
	handler := newHandler(t, chatter, cache)

	first := handler.Execute(context.Background(), "prompt", models.IntentPrice)
	second := handler.Execute(context.Background(), "prompt", models.IntentPrice)

	assert.Equal(t, "trả lời từ mô hình", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, chatter.calls)

	// Different intent misses and regenerates.
	handler.Execute(context.Background(), "prompt", models.IntentAdvice)
	assert.Equal(t, 2, chatter.calls)
}

func TestExecuteFailureNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := llm.NewResponseCache(client, time.Minute, logger.NewTestLogger(t))

	chatter := &stubChatter{err: errors.New("down")}
	handler := newHandler(t, chatter, cache)

	handler.Execute(context.Background(), "prompt", models.IntentPrice)

	chatter.err = nil
	chatter.response = "đã phục hồi"
	reply := handler.Execute(context.Background(), "prompt", models.IntentPrice)
	assert.Equal(t, "đã phục hồi", reply)
}
