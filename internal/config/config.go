package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/satdrill/internal/llm"
	"github.com/abhisek/satdrill/internal/session"
	"github.com/abhisek/satdrill/internal/store"
)

// EnvPrefix prefixes every environment variable, e.g. SATDRILL_STORE_DRIVER.
const EnvPrefix = "SATDRILL"

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	ErrUnknownStoreDriver = errors.New("unknown store driver")
	ErrMissingDSN         = errors.New("store.dsn is required for the postgres driver")
	ErrInvalidFeedCount   = errors.New("session.feed_count must be positive")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string        `mapstructure:"env"`     // local, production
	Store   StoreConfig   `mapstructure:"store"`   // learner model persistence
	Catalog CatalogConfig `mapstructure:"catalog"` // content source
	Session SessionConfig `mapstructure:"session"` // feed defaults
	LLM     llm.Config    `mapstructure:"llm"`     // explain and tutor backend
}

// StoreConfig selects where the learner model blob lives.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, postgres or memory
	Path   string `mapstructure:"path"`   // sqlite file; empty means the XDG default
	DSN    string `mapstructure:"dsn"`    // postgres connection string
	Key    string `mapstructure:"key"`    // blob key of the model
}

// CatalogConfig points at an optional content file. Empty means the
// built-in catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig holds feed defaults.
type SessionConfig struct {
	FeedCount int `mapstructure:"feed_count"`
}

// IsProduction reports whether the production logger should be used.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from an optional file, a .env file in the
// working directory and SATDRILL_* environment variables, in increasing
// order of precedence. An empty path searches ./config.yaml and
// $XDG_CONFIG_HOME/satdrill/config.yaml.
func Load(path string) (*Config, error) {
	// .env is optional; variables already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.LLM.Discover()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Store.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.Store.Driver)
	}
	if c.Session.FeedCount <= 0 {
		return ErrInvalidFeedCount
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.path", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.key", store.DefaultModelKey)
	v.SetDefault("catalog.path", "")
	v.SetDefault("session.feed_count", session.DefaultFeedCount)

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	for name, p := range map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  d.Anthropic,
		llm.ProviderOpenAI:     d.OpenAI,
		llm.ProviderGemini:     d.Gemini,
		llm.ProviderOpenRouter: d.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", p.APIKey)
		v.SetDefault("llm."+name+".model", p.Model)
		v.SetDefault("llm."+name+".base_url", p.BaseURL)
	}
}

// bindEnv maps a few shorter names onto nested keys.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("env", EnvPrefix+"_ENV", "APP_ENV")
	_ = v.BindEnv("store.path", EnvPrefix+"_STORE_PATH", EnvPrefix+"_DB")
	_ = v.BindEnv("store.dsn", EnvPrefix+"_STORE_DSN", "DATABASE_URL")
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "satdrill"), nil
}

// LLMTimeout returns the LLM timeout, or a default when unset.
func (c *Config) LLMTimeout() time.Duration {
	if c.LLM.Timeout <= 0 {
		return llm.DefaultConfig().Timeout
	}
	return c.LLM.Timeout
}
