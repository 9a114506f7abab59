// internal/pipeline/websearch/handler_test.go
package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-advisor/internal/common/logger"
	"product-advisor/internal/models"
)

func newTestHandler(t *testing.T, baseURL string) *Handler {
	t.Helper()
	return NewHandler(&Config{
		BaseURL:    baseURL,
		Timeout:    5 * time.Second,
		MaxResults: 5,
	}, logger.NewTestLogger(t))
}

func TestExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "giá iPhone 15", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("max_results"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]string{
				{"title": "Giá iPhone 15", "body": "iPhone 15 giá từ 22.990.000đ", "href": "https://example.vn/iphone"},
				{"title": "No body", "body": "", "href": "https://example.vn/empty"},
				{"title": "Review", "body": "Đánh giá chi tiết iPhone 15", "href": "https://example.vn/review"},
			},
		})
	}))
	defer server.Close()

	handler := newTestHandler(t, server.URL)
	snippets, err := handler.Execute(context.Background(), "giá iPhone 15")
	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.Equal(t, "Giá iPhone 15", snippets[0].Title)
	assert.Equal(t, "https://example.vn/iphone", snippets[0].URL)
}

func TestExecuteProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	handler := newTestHandler(t, server.URL)
	snippets, err := handler.Execute(context.Background(), "câu hỏi")
	assert.Error(t, err)
	assert.Empty(t, snippets)
	assert.Contains(t, err.Error(), "WEB_SEARCH_FAILED")
}

func TestExecuteResultCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := make([]map[string]string, 10)
		for i := range results {
			results[i] = map[string]string{"title": "t", "body": "nội dung", "href": "https://example.vn"}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
	}))
	defer server.Close()

	handler := newTestHandler(t, server.URL)
	snippets, err := handler.Execute(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, snippets, 5)
}

func TestFilterVietnamese(t *testing.T) {
	snippets := []models.WebSnippet{
		{Title: "Giá iPhone", Body: "iPhone 15 giá từ 22 triệu đồng", URL: "https://example.vn"},
		{Title: "iPhone price", Body: "iPhone 15 starts at 799 USD", URL: "https://example.com"},
		{Title: "Danh gia", Body: "Đánh giá pin tốt", URL: "https://example.vn/pin"},
	}

	filtered := FilterVietnamese(snippets)
	require.Len(t, filtered, 2)
	assert.Equal(t, "https://example.vn", filtered[0].URL)
	assert.Equal(t, "https://example.vn/pin", filtered[1].URL)
}
