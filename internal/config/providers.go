package config

// ProviderInfo describes an OpenAI-compatible chat-completion endpoint.
type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	BaseURL      string
	EnvKey       string
	SignupURL    string
	Models       []string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o, most capable",
		BaseURL:      "https://api.openai.com/v1",
		EnvKey:       "OPENAI_API_KEY",
		SignupURL:    "https://platform.openai.com/api-keys",
		Models:       []string{"gpt-4o-mini", "gpt-4o", "gpt-4-turbo"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		BaseURL:      "https://api.groq.com/openai/v1",
		EnvKey:       "GROQ_API_KEY",
		SignupURL:    "https://console.groq.com/keys",
		Models:       []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"},
		DefaultModel: "llama-3.1-70b-versatile",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		BaseURL:      "https://openrouter.ai/api/v1",
		EnvKey:       "OPENROUTER_API_KEY",
		SignupURL:    "https://openrouter.ai/keys",
		Models:       []string{"openai/gpt-4o-mini", "anthropic/claude-3.5-sonnet", "meta-llama/llama-3.1-70b-instruct"},
		DefaultModel: "openai/gpt-4o-mini",
	},
	{
		ID:          "custom",
		Name:        "Custom",
		Description: "Any OpenAI-compatible endpoint",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
