package explain

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/satdrill/internal/llm"
)

// ErrNoMessages is returned by Tutor when the conversation has no user or
// assistant turns.
var ErrNoMessages = errors.New("tutor: no messages")

// Tutor answers the latest student message. Only the trailing user and
// assistant turns are forwarded. Without a provider, or when the provider
// fails, the reply is canned and Mock is set.
func (s *Service) Tutor(ctx context.Context, req TutorRequest) (TutorReply, error) {
	turns := conversationTurns(req.Messages, s.cfg.TutorTurns)
	if len(turns) == 0 {
		return TutorReply{}, ErrNoMessages
	}
	question := req.Context.Normalized()
	if s.provider == nil {
		return mockTutorReply(lastUserMessage(turns)), nil
	}

	reply, err := s.generateReply(ctx, question, turns)
	if err != nil {
		s.logger.Warn("tutor fallback",
			zap.String("subject", question.Subject),
			zap.Error(err))
		return mockTutorReply(lastUserMessage(turns)), nil
	}
	if reply == "" {
		reply = fallbackReply(question)
	}
	return TutorReply{
		Reply:       reply,
		Suggestions: buildSuggestions(question),
	}, nil
}

func (s *Service) generateReply(ctx context.Context, req Request, turns []llm.Message) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTutor)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      buildTutorSystemPrompt(req),
		Messages:    turns,
		MaxTokens:   s.cfg.TutorMaxTokens,
		Temperature: s.cfg.TutorTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("tutor generation: %w", err)
	}
	return resp.Text(), nil
}

// conversationTurns keeps user and assistant messages, at most the last n.
func conversationTurns(msgs []llm.Message, n int) []llm.Message {
	var out []llm.Message
	for _, m := range msgs {
		if m.Role == llm.RoleUser || m.Role == llm.RoleAssistant {
			out = append(out, m)
		}
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

func lastUserMessage(msgs []llm.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}
