// Package explain produces answer explanations and Socratic tutor replies
// for quiz items. It degrades to canned coaching whenever no model is
// configured or the model call fails.
package explain

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/satdrill/internal/llm"
)

// Service talks to an llm.Provider on behalf of the explain and tutor
// commands. A nil provider is valid and always yields mock content.
type Service struct {
	provider llm.Provider
	cfg      Config
	timeout  time.Duration
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithConfig overrides the generation settings.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithTimeout bounds each model call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		cfg:      DefaultConfig(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Live reports whether a model provider is configured.
func (s *Service) Live() bool {
	return s.provider != nil
}

type explanationOutput struct {
	Bullets   []string `json:"bullets"`
	Tips      []string `json:"tips"`
	NextSteps []string `json:"nextSteps"`
}

// Explain returns a breakdown of the question. It never fails: without a
// provider it returns mock content, and on provider errors it returns mock
// content carrying FallbackNote.
func (s *Service) Explain(ctx context.Context, req Request) Explanation {
	req = req.Normalized()
	if s.provider == nil {
		return mockExplanation(req, "")
	}

	out, err := s.generateExplanation(ctx, req)
	if err != nil {
		s.logger.Warn("explanation fallback",
			zap.String("subject", req.Subject),
			zap.Error(err))
		return mockExplanation(req, FallbackNote)
	}
	return shape(Explanation{
		Bullets:   out.Bullets,
		Tips:      out.Tips,
		NextSteps: out.NextSteps,
	})
}

func (s *Service) generateExplanation(ctx context.Context, req Request) (*explanationOutput, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	userMsg, err := buildExplainUserMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build explanation prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      explainSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.ExplainMaxTokens,
		Temperature: s.cfg.ExplainTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse explanation output: %w", err)
	}
	return &out, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
