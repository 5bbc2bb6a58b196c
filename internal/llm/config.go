package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone       = ""
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// ErrMissingAPIKey is returned by Validate when the selected provider has
// no key configured.
var ErrMissingAPIKey = errors.New("llm: api key is required")

// Config selects and configures the language model behind the explain and
// tutor features. An empty Provider disables them; callers fall back to
// canned content.
type Config struct {
	Provider string `mapstructure:"provider"`

	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`

	Retry RetryConfig `mapstructure:"retry"`

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ProviderConfig holds credentials and the model for one backend.
// BaseURL is honoured by the OpenAI-compatible providers only.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns the built-in defaults. No provider is selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "openai/gpt-4o-mini", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Discover fills in a provider from the conventional vendor environment
// variables when none was configured explicitly. It reports whether a key
// was found.
func (c *Config) Discover() bool {
	if c.Provider != ProviderNone {
		return true
	}
	probes := []struct {
		env      string
		provider string
		target   *ProviderConfig
	}{
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic},
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			if p.target.APIKey == "" {
				p.target.APIKey = k
			}
			return true
		}
	}
	return false
}

// Selected returns the settings of the configured provider.
func (c Config) Selected() ProviderConfig {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderGemini:
		return c.Gemini
	case ProviderOpenRouter:
		return c.OpenRouter
	}
	return ProviderConfig{}
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Selected().APIKey == "" {
			return fmt.Errorf("%w for the %s provider", ErrMissingAPIKey, c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
