package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/selection"
)

const (
	// DefaultFeedCount is the number of quizzes in a feed when none is given.
	DefaultFeedCount = 20

	// attemptsPerSlot bounds how many picks are spent per requested quiz.
	attemptsPerSlot = 10
)

// FeedOptions controls feed construction.
type FeedOptions struct {
	// Count is the maximum number of quiz items. Zero means DefaultFeedCount.
	Count int
	// Completed holds item ids that must not appear in the feed.
	Completed map[string]bool
}

// Feed is one ordered practice session: an optional intro lesson, the
// selected quizzes, and an optional summary lesson.
type Feed struct {
	ID        string
	Subject   string
	CreatedAt time.Time
	Items     []catalog.Item
}

// Quizzes returns only the quiz items of the feed.
func (f *Feed) Quizzes() []catalog.Item {
	var out []catalog.Item
	for _, it := range f.Items {
		if it.IsQuiz() {
			out = append(out, it)
		}
	}
	return out
}

// Builder assembles feeds by repeatedly asking the selector for the next
// item.
type Builder struct {
	selector *selection.Selector
	now      func() time.Time
	logger   *zap.Logger
}

// NewBuilder creates a feed builder.
func NewBuilder(selector *selection.Selector, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{selector: selector, now: time.Now, logger: logger}
}

// BuildFeed returns an ordered feed for subject. The quiz segment holds at
// most opts.Count distinct items, none of them in opts.Completed. Selection
// stops after Count*10 picks even if the segment is short.
func (b *Builder) BuildFeed(ctx context.Context, subject string, cat *catalog.Catalog, opts FeedOptions) *Feed {
	count := opts.Count
	if count <= 0 {
		count = DefaultFeedCount
	}

	feed := &Feed{
		ID:        uuid.NewString(),
		Subject:   subject,
		CreatedAt: b.now(),
	}

	if intro, ok := cat.Intro(subject); ok {
		feed.Items = append(feed.Items, intro)
	}

	used := make(map[string]bool, len(opts.Completed)+count)
	for id := range opts.Completed {
		used[id] = true
	}

	var quizzes, attempts int
	for quizzes < count && attempts < count*attemptsPerSlot {
		attempts++
		it, ok := b.selector.NextItem(ctx, subject, cat)
		if !ok {
			break
		}
		if used[it.ID] {
			continue
		}
		used[it.ID] = true
		feed.Items = append(feed.Items, it)
		quizzes++
	}

	if summary, ok := cat.Summary(subject); ok {
		feed.Items = append(feed.Items, summary)
	}

	b.logger.Debug("feed built",
		zap.String("feed_id", feed.ID),
		zap.String("subject", subject),
		zap.Int("quizzes", quizzes),
		zap.Int("attempts", attempts))
	return feed
}
