package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures one provider.
type Config struct {
	// Provider is "anthropic", "openai", "openrouter", "gemini", "mock"
	// or "auto" (pick the first provider with a key in the environment).
	Provider string
	APIKey   string
	Model    string
	BaseURL  string

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
	Retry   RetryConfig
}

// RetryConfig is exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
}

var defaultModels = map[string]string{
	"anthropic":  "claude-haiku-4-5",
	"openai":     "gpt-4o-mini",
	"openrouter": "google/gemini-2.0-flash-001",
	"gemini":     "gemini-2.0-flash",
	"mock":       "mock",
}

// keyEnv lists the conventional key variables, in discovery order.
var keyEnv = []struct{ provider, env string }{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// ConfigFromEnv builds a Config for provider. SIGNALQUIZ_LLM_API_KEY,
// SIGNALQUIZ_LLM_MODEL and SIGNALQUIZ_LLM_BASE_URL override the
// provider's conventional variables.
func ConfigFromEnv(provider string) Config {
	return configFrom(provider, os.Getenv)
}

func configFrom(provider string, getenv func(string) string) Config {
	cfg := Config{
		Provider: provider,
		Timeout:  30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
		},
	}

	if provider == "auto" {
		cfg.Provider = ""
		for _, k := range keyEnv {
			if getenv(k.env) != "" {
				cfg.Provider = k.provider
				break
			}
		}
	}

	for _, k := range keyEnv {
		if k.provider == cfg.Provider {
			cfg.APIKey = getenv(k.env)
		}
	}
	if v := getenv("SIGNALQUIZ_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}

	cfg.Model = defaultModels[cfg.Provider]
	if v := getenv("SIGNALQUIZ_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.BaseURL = getenv("SIGNALQUIZ_LLM_BASE_URL")
	return cfg
}

// Validate checks the provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "mock":
		return nil
	case "anthropic", "openai", "openrouter", "gemini":
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider (set SIGNALQUIZ_LLM_API_KEY)", c.Provider)
		}
		return nil
	case "":
		return fmt.Errorf("no LLM provider configured")
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
