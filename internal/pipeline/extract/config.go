// internal/pipeline/extract/config.go
package extract

type Config struct {
	MaxTokens   int
	Temperature float64
}

func LoadConfig() *Config {
	return &Config{
		MaxTokens:   128,
		Temperature: 0.1,
	}
}
