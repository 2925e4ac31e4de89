package llm

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider routes requests through OpenRouter's OpenAI-compatible
// endpoint. Everything past the base URL is handled by OpenAIProvider.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = openRouterBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenRouterProvider{
		OpenAIProvider: &OpenAIProvider{
			client: openai.NewClientWithConfig(clientCfg),
			model:  cfg.Model,
		},
	}, nil
}
