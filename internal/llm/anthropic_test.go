package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(ProviderConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: server.URL})
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var got map[string]any
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicMessage(`{"bullets":["a"],"tips":[],"nextSteps":[]}`, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "You are a concise SAT tutor.",
		Messages: []Message{
			{Role: RoleUser, Content: "Explain."},
			{Role: RoleAssistant, Content: "Sure."},
			{Role: RoleUser, Content: "Go on."},
		},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)

	assert.Equal(t, "claude-haiku-4-5-20251001", got["model"])
	msgs, _ := got["messages"].([]any)
	require.Len(t, msgs, 3)
	assert.Equal(t, "assistant", msgs[1].(map[string]any)["role"])
}

func TestAnthropicProvider_TruncatedStructuredOutput(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(anthropicMessage(`{"bullets":["a"`, "max_tokens"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		Schema:    testSchema(),
		MaxTokens: 10,
	})
	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok), "got %T (%v)", err, err)
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var rl *ErrRateLimit
			return errors.As(err, &rl)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var un *ErrProviderUnavailable
			return errors.As(err, &un)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"type":  "error",
					"error": map[string]any{"type": "api_error", "message": "nope"},
				})
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %T (%v)", err, err)
		})
	}
}

func TestAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(ProviderConfig{Model: "claude-haiku"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		models map[string]string
		input  string
		want   string
	}{
		{anthropicModels, "claude-sonnet", "claude-sonnet-4-20250514"},
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{geminiModels, "gemini-flash", "gemini-2.0-flash"},
		{geminiModels, "gemini-2.5-flash", "gemini-2.5-flash"},
		{openaiModels, "gpt-4o-mini", "gpt-4o-mini"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.input, tt.models), tt.input)
	}
}
