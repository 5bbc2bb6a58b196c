package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider logs every request with its latency, token usage and
// estimated cost.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, logger: logger.Named("llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("purpose", PurposeFrom(ctx)),
		zap.String("model", l.inner.ModelID()),
		zap.Duration("latency", time.Since(start)),
		zap.Int("messages", len(req.Messages)),
		zap.Bool("structured", req.Schema != nil),
	}
	if resp != nil {
		fields = append(fields,
			zap.String("served_by", resp.Model),
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
		if cost := LookupCost(resp.Model); cost != nil {
			fields = append(fields, zap.Float64("cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
		}
	}

	if err != nil {
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	l.logger.Info("llm request", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
