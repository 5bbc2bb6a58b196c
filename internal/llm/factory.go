package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNoProvider is returned by NewProvider when no provider is configured.
var ErrNoProvider = errors.New("llm: no provider configured")

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → backend.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderNone:
		return nil, ErrNoProvider
	case ProviderMock:
		return NewMockProvider(), nil
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, logger), cfg.Retry, logger), nil
}
