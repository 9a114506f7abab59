// internal/pipeline/retrieve/config.go
package retrieve

import "product-advisor/internal/common/config"

type Config struct {
	SemanticTopK      int
	SemanticThreshold float64
	MaxResults        int
}

func LoadConfig(pipeline config.PipelineConfig) *Config {
	return &Config{
		SemanticTopK:      pipeline.SemanticTopK,
		SemanticThreshold: pipeline.SemanticThreshold,
		MaxResults:        pipeline.MaxResults,
	}
}
