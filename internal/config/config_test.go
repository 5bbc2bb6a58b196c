package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/satdrill/internal/llm"
	"github.com/abhisek/satdrill/internal/store"
)

// isolate clears the variables Load reads so the host environment cannot
// leak into a test.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SATDRILL_ENV", "APP_ENV", "SATDRILL_STORE_DRIVER", "SATDRILL_STORE_PATH", "SATDRILL_DB",
		"SATDRILL_STORE_DSN", "DATABASE_URL", "SATDRILL_STORE_KEY", "SATDRILL_CATALOG_PATH",
		"SATDRILL_SESSION_FEED_COUNT", "SATDRILL_LLM_PROVIDER",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, store.DefaultModelKey, cfg.Store.Key)
	assert.Empty(t, cfg.Catalog.Path)
	assert.Equal(t, 20, cfg.Session.FeedCount)
	assert.Equal(t, llm.ProviderNone, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout())
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
env: production
store:
  driver: memory
  key: learner_a
catalog:
  path: /srv/catalog.yaml
session:
  feed_count: 8
llm:
  provider: openai
  timeout: 5s
  openai:
    api_key: sk-file
    model: gpt-4o
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "learner_a", cfg.Store.Key)
	assert.Equal(t, "/srv/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, 8, cfg.Session.FeedCount)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-file", cfg.LLM.Selected().APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.Selected().Model)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "session:\n  feed_count: 8\nstore:\n  driver: memory\n")
	t.Setenv("SATDRILL_SESSION_FEED_COUNT", "12")
	t.Setenv("SATDRILL_STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/satdrill")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Session.FeedCount)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/satdrill", cfg.Store.DSN)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-env", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"unknown driver", "store:\n  driver: redis\n", ErrUnknownStoreDriver},
		{"postgres without dsn", "store:\n  driver: postgres\n", ErrMissingDSN},
		{"zero feed count", "session:\n  feed_count: 0\n", ErrInvalidFeedCount},
		{"llm key missing", "llm:\n  provider: anthropic\n", llm.ErrMissingAPIKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
