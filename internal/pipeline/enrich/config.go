// internal/pipeline/enrich/config.go
package enrich

type Config struct {
	MaxTokens   int
	Temperature float64
}

func LoadConfig() *Config {
	return &Config{
		MaxTokens:   200,
		Temperature: 0.1,
	}
}
