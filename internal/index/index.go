// internal/index/index.go
package index

import (
	"context"
	stderrors "errors"
	"math"
	"sort"
	"sync"

	"product-advisor/internal/common/errors"
	"product-advisor/internal/common/logger"
)

// Match is one semantic hit: the stored document and its cosine similarity
// against the query, in [0, 1] for non-degenerate vectors.
type Match struct {
	Document string
	Score    float64
}

// Index is an in-memory brute-force vector index over the catalog corpus.
// Vectors are L2-normalized at insert so similarity is a plain dot product.
// Build replaces the whole index; it is safe to call concurrently with Query.
type Index struct {
	mu       sync.RWMutex
	embedder Embedder
	logger   logger.Logger

	docs    []string
	vectors [][]float64
}

func New(embedder Embedder, log logger.Logger) *Index {
	return &Index{
		embedder: embedder,
		logger:   log.WithFields(map[string]interface{}{"component": "index"}),
	}
}

// Build embeds the corpus and swaps it in as the active index. Documents and
// vectors stay aligned one-to-one for the index lifetime.
func (idx *Index) Build(ctx context.Context, docs []string) error {
	if len(docs) == 0 {
		return errors.NewIndexBuildFailedError(stderrors.New("empty corpus"))
	}

	vecs, err := idx.embedder.EmbedBatch(ctx, docs)
	if err != nil {
		return errors.NewIndexBuildFailedError(err)
	}

	normalized := make([][]float64, len(vecs))
	for i, v := range vecs {
		normalized[i] = normalize(v)
	}

	idx.mu.Lock()
	idx.docs = append([]string(nil), docs...)
	idx.vectors = normalized
	idx.mu.Unlock()

	idx.logger.Info("Semantic index built", map[string]interface{}{
		"documents": len(docs),
		"dimension": len(normalized[0]),
	})
	return nil
}

// Size returns the number of indexed documents.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Query embeds the text and returns up to topK documents whose similarity
// meets the threshold, best first.
func (idx *Index) Query(ctx context.Context, text string, topK int, threshold float64) ([]Match, error) {
	qv, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	qv = normalize(qv)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := make([]Match, 0, topK)
	for i, v := range idx.vectors {
		score := dot(qv, v)
		if score >= threshold {
			matches = append(matches, Match{Document: idx.docs[i], Score: score})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool { return matches[a].Score > matches[b].Score })
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
