package llm

import (
	"fmt"
	"os"
)

// Config holds all provider configuration.
type Config struct {
	// Provider selects which backend to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults. Gemini is the
// default backend because it is what the tutor was tuned against.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("PAM_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("PAM_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("PAM_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("PAM_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("PAM_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("PAM_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("PAM_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("PAM_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("PAM_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("PAM_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	// Fall back to the standard key vars when no PAM-specific key is set.
	if !cfg.hasKey() {
		if discovered, ok := DiscoverConfig(); ok {
			return discovered
		}
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini -> OpenAI -> Anthropic -> OpenRouter) and returns a Config for
// the first provider whose key is found. Returns (Config{}, false) if none
// is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

func (c Config) hasKey() bool {
	switch c.Provider {
	case "gemini":
		return c.Gemini.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
// The application cannot run without a credential, so callers treat a
// failure here as fatal at startup.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("PAM_GEMINI_API_KEY (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("PAM_OPENAI_API_KEY (or OPENAI_API_KEY) is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("PAM_ANTHROPIC_API_KEY (or ANTHROPIC_API_KEY) is required for the anthropic provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("PAM_OPENROUTER_API_KEY (or OPENROUTER_API_KEY) is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
