// internal/llm/cache.go
package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"product-advisor/internal/common/logger"
)

// ResponseCache stores final generation responses in Redis keyed by a hash
// of (prompt, intent). Cache failures are logged and ignored: a broken cache
// must never break a turn.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewResponseCache(client *redis.Client, ttl time.Duration, log logger.Logger) *ResponseCache {
	return &ResponseCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "responseCache"}),
	}
}

// CacheKey derives the Redis key for a (prompt, intent) pair.
func CacheKey(prompt, intent string) string {
	h := sha256.Sum256([]byte(intent + "\x00" + prompt))
	return "advisor:response:" + hex.EncodeToString(h[:])
}

// Get returns the cached response and whether it was present.
func (c *ResponseCache) Get(ctx context.Context, prompt, intent string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, CacheKey(prompt, intent)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warn("Response cache read failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	return val, true
}

// Set stores a response with the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, prompt, intent, response string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, CacheKey(prompt, intent), response, c.ttl).Err(); err != nil {
		c.logger.Warn("Response cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
