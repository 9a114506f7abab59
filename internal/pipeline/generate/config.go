// internal/pipeline/generate/config.go
package generate

type Config struct {
	TopP float64
	TopK int
}

func LoadConfig() *Config {
	return &Config{
		TopP: 0.95,
		TopK: 20,
	}
}
