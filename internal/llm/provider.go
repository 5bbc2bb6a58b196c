// Package llm wraps the chat-completion backends used to explain quiz
// answers and to run the tutor conversation.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider sends one request to a language model.
type Provider interface {
	// Generate returns the model output. When req.Schema is set the content
	// is JSON that has been validated against it; otherwise it is the raw
	// reply text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for structured JSON output.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the response must satisfy.
type Schema struct {
	// Name is kebab-case; it doubles as the OpenAI schema name and the
	// validator cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is the model that actually served the request.
	Model string
	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns the content as trimmed plain text.
func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Content))
}

// Decode unmarshals structured content into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Content, v)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Purposes label requests in logs.
const (
	PurposeExplain = "explain"
	PurposeTutor   = "tutor"
	PurposeCheck   = "check"
)

type contextKey struct{}

// WithPurpose attaches a purpose label to the context.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, contextKey{}, purpose)
}

// PurposeFrom extracts the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok {
		return v
	}
	return "unknown"
}
