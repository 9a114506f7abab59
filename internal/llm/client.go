// internal/llm/client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"product-advisor/internal/common/config"
	"product-advisor/internal/common/errors"
	"product-advisor/internal/common/logger"
)

// Request is one chat completion call. Extra carries backend-specific body
// fields (top_k, template switches) passed through untouched.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	TopP        float64
	Extra       map[string]interface{}
}

// Chatter is the completion surface the pipeline stages depend on.
type Chatter interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client calls an OpenAI-compatible /chat/completions endpoint with a single
// user message per request.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  logger.Logger
}

func NewClient(cfg config.LLMConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
		logger:  log.WithFields(map[string]interface{}{"component": "llm"}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	body := map[string]interface{}{
		"model":    c.model,
		"messages": []chatMessage{{Role: "user", Content: req.Prompt}},
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		body["temperature"] = req.Temperature
	}
	if req.TopP > 0 {
		body["top_p"] = req.TopP
	}
	for k, v := range req.Extra {
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.NewGenerationFailedError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.NewGenerationFailedError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", errors.NewLLMTimeoutError()
		}
		return "", errors.NewGenerationFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errors.NewGenerationFailedError(
			fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, string(raw)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.NewGenerationFailedError(err)
	}
	if out.Error != nil {
		return "", errors.NewGenerationFailedError(stderrors.New(out.Error.Message))
	}
	if len(out.Choices) == 0 {
		return "", errors.NewGenerationFailedError(stderrors.New("no choices in completion response"))
	}
	return out.Choices[0].Message.Content, nil
}
