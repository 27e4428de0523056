package llm

import (
	"context"
	"fmt"
	"strings"

	"goldpan/internal/config"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var AllowedModels = map[string]bool{
	"gemini-2.5-flash":     true,
	"gemini-2.0-flash-exp": true,
	"gpt-4o-mini":          true,
	"gpt-4o":               true,
}

// Factory creates LLM clients with consistent logic
type Factory struct {
	GeminiAPIKey  string
	OpenaiAPIKey  string
	OpenaiBaseURL string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OpenaiAPIKey:  cfg.OpenAIAPIKey,
		OpenaiBaseURL: cfg.OpenAIBaseURL,
	}
}

func (f *Factory) CreateClient(ctx context.Context, provider, model string) (Client, error) {
	switch strings.ToLower(provider) {
	case ProviderGemini:
		return NewGemini(ctx, f.GeminiAPIKey, model)
	case ProviderOpenAI:
		return NewOpenAI(f.OpenaiAPIKey, f.OpenaiBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}

func IsModelAllowed(model string) bool {
	return AllowedModels[model]
}
