// internal/pipeline/scope/config.go
package scope

type Config struct {
	MaxTokens   int
	Temperature float64
}

func LoadConfig() *Config {
	return &Config{
		MaxTokens:   50,
		Temperature: 0.1,
	}
}
