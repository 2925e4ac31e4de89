package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/pam/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with event
// logging. There is deliberately no retry layer: every failed call is
// terminal for its operation and surfaces to the user, who decides whether
// to try again.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, eventRepo), nil
}

// NewProviderFromEnv builds a Provider from environment configuration.
// A missing credential is an error; the caller treats it as fatal.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}
