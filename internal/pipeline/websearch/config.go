// internal/pipeline/websearch/config.go
package websearch

import (
	"time"

	"product-advisor/internal/common/config"
)

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxResults int
}

func LoadConfig(ws config.WebSearchConfig) *Config {
	cfg := &Config{
		BaseURL:    ws.BaseURL,
		APIKey:     ws.APIKey,
		Timeout:    time.Duration(ws.Timeout) * time.Millisecond,
		MaxResults: ws.MaxResults,
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = 5
	}
	return cfg
}
