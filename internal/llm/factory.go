package llm

import (
	"fmt"

	"github.com/sant0-9/advisor/internal/config"
)

// NewProvider creates a provider from config, authenticated with apiKey.
func NewProvider(cfg *config.Config, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s requires an API key", cfg.Provider)
	}

	switch cfg.Provider {
	case "", "openai":
		return NewOpenAICompatibleProvider("openai", cfg.BaseURL, apiKey, cfg.EffectiveModel()), nil

	case "groq", "openrouter":
		return NewOpenAICompatibleProvider(cfg.Provider, cfg.EffectiveBaseURL(), apiKey, cfg.EffectiveModel()), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewOpenAICompatibleProvider("custom", cfg.BaseURL, apiKey, cfg.EffectiveModel()), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
