package mastery

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/store"
)

// HistoryLimit caps the attempt log; the oldest entries are evicted first.
const HistoryLimit = 500

// Engine owns the learner model for one session. The model is loaded
// lazily from the repo on first use, mutated in memory, and written back in
// full after every change. Persistence failures are logged and never
// surfaced: the in-memory model stays authoritative.
type Engine struct {
	mu     sync.Mutex
	repo   *store.ModelRepo
	rng    Rand
	now    func() time.Time
	logger *zap.Logger

	model *store.Model
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for difficulty jitter and selection.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine backed by repo.
func NewEngine(repo *store.ModelRepo, opts ...Option) *Engine {
	e := &Engine{
		repo:   repo,
		rng:    NewRand(),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rand returns the engine's random source so that collaborators draw from
// the same (possibly seeded) stream.
func (e *Engine) Rand() Rand {
	return e.rng
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// InitModel ensures every quiz topic in cat has a state entry, persists the
// model and returns a copy of it. Existing topic state is never changed.
func (e *Engine) InitModel(ctx context.Context, cat *catalog.Catalog) *store.Model {
	e.mu.Lock()
	defer e.mu.Unlock()

	m := e.loadLocked(ctx)
	for _, key := range cat.QuizTopicKeys() {
		if _, ok := m.Topics[key]; !ok {
			m.Topics[key] = NewTopicState()
		}
	}
	e.persistLocked(ctx)
	return m.Clone()
}

// RecordResult applies one graded attempt. Items without an id are ignored.
func (e *Engine) RecordResult(ctx context.Context, item catalog.Item, correct bool) {
	if item.ID == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	m := e.loadLocked(ctx)
	now := e.now()

	is, ok := m.Items[item.ID]
	if !ok {
		is = &store.ItemState{}
		m.Items[item.ID] = is
	}
	is.Seen++
	is.LastSeen = &now
	if correct {
		is.Correct++
	} else {
		is.Wrong++
	}

	key, hasKey := item.Key()
	if hasKey {
		ts, ok := m.Topics[key]
		if !ok {
			ts = NewTopicState()
			m.Topics[key] = ts
		}
		difficulty := InferDifficulty(item, ts.Rating, e.rng)
		before := ts.Rating

		ts.Rating = UpdateRating(ts.Rating, difficulty, correct)
		ts.Seen++
		if correct {
			ts.Correct++
		} else {
			ts.Wrong++
		}
		ts.Fatigue = UpdateFatigue(ts.Fatigue, correct)
		ts.Last = &now

		e.logger.Debug("rating updated",
			zap.String("item_id", item.ID),
			zap.Stringer("topic", key),
			zap.Bool("correct", correct),
			zap.Int("difficulty", difficulty),
			zap.Int("from", before),
			zap.Int("to", ts.Rating),
		)
	}

	m.History = append(m.History, store.HistoryEntry{
		ID:        item.ID,
		Subject:   item.Subject,
		Topic:     key,
		Correct:   correct,
		Timestamp: now,
	})
	if n := len(m.History); n > HistoryLimit {
		m.History = append([]store.HistoryEntry(nil), m.History[n-HistoryLimit:]...)
	}

	e.persistLocked(ctx)
}

// Reset clears the persisted model. The next InitModel reseeds from scratch.
// The in-memory model is emptied even when the store cannot be cleared, so
// a failed remove never brings old progress back.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.model = store.NewModel()
	if err := e.repo.Clear(ctx); err != nil {
		e.logger.Warn("clear learner model", zap.Error(err))
	}
}

// NewTopicState returns the state of a never-attempted topic.
func NewTopicState() *store.TopicState {
	return &store.TopicState{Rating: InitialRating}
}

// loadLocked returns the in-memory model, reading it from the repo on first
// use. Read failures and corrupt data yield an empty model.
func (e *Engine) loadLocked(ctx context.Context) *store.Model {
	if e.model != nil {
		return e.model
	}
	m, err := e.repo.Load(ctx)
	if err != nil {
		e.logger.Warn("load learner model, starting empty", zap.Error(err))
	}
	if m == nil {
		m = store.NewModel()
	}
	e.model = m
	return m
}

func (e *Engine) persistLocked(ctx context.Context) {
	if err := e.repo.Save(ctx, e.model); err != nil {
		e.logger.Warn("save learner model", zap.Error(err))
	}
}
