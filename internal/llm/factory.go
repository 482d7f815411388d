package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider builds the provider named by cfg and wraps it so calls are
// retried and recorded: caller -> retry -> record -> provider.
func NewProvider(ctx context.Context, cfg Config, j Journal, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropic(cfg)
	case "openai", "openrouter":
		base, err = NewOpenAI(cfg)
	case "gemini":
		base, err = NewGemini(ctx, cfg)
	case "mock":
		base = NewMock()
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}
	return Retry(Record(base, cfg.Provider, j, log), cfg.Retry), nil
}
