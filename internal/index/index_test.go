// internal/index/index_test.go
package index

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-advisor/internal/common/config"
	"product-advisor/internal/common/logger"
)

// fakeEmbedder maps known strings to fixed 3-dimensional vectors.
type fakeEmbedder struct {
	vectors map[string][]float64
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func TestIndexQueryRanksAndFilters(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"doc close":   {1, 0.1, 0},
		"doc partial": {0.5, 0.5, 0},
		"doc far":     {0, 0, 1},
		"query":       {1, 0, 0},
	}}

	idx := New(emb, logger.NewTestLogger(t))
	require.NoError(t, idx.Build(context.Background(), []string{"doc close", "doc partial", "doc far"}))
	assert.Equal(t, 3, idx.Size())

	matches, err := idx.Query(context.Background(), "query", 10, 0.55)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "doc close", matches[0].Document)
	assert.Equal(t, "doc partial", matches[1].Document)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestIndexQueryTopK(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"a":     {1, 0, 0},
		"b":     {0.9, 0.1, 0},
		"c":     {0.8, 0.2, 0},
		"query": {1, 0, 0},
	}}

	idx := New(emb, logger.NewTestLogger(t))
	require.NoError(t, idx.Build(context.Background(), []string{"a", "b", "c"}))

	matches, err := idx.Query(context.Background(), "query", 2, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].Document)
}

func TestIndexBuildEmptyCorpus(t *testing.T) {
	idx := New(&fakeEmbedder{}, logger.NewTestLogger(t))
	err := idx.Build(context.Background(), nil)
	assert.Error(t, err)
}

func TestHTTPEmbedderBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)

		// Return entries out of order to exercise index reassembly.
		resp := map[string]interface{}{
			"data": []map[string]interface{}{
				{"index": 1, "embedding": []float64{0, 1}},
				{"index": 0, "embedding": []float64{1, 0}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	emb := NewHTTPEmbedder(config.EmbeddingsConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	})

	vecs, err := emb.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float64{1, 0}, vecs[0])
	assert.Equal(t, []float64{0, 1}, vecs[1])
}

func TestHTTPEmbedderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	emb := NewHTTPEmbedder(config.EmbeddingsConfig{BaseURL: server.URL})
	_, err := emb.EmbedBatch(context.Background(), []string{"text"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "EMBEDDING_FAILED")
}
