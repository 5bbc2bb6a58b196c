package selection

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/mastery"
	"github.com/abhisek/satdrill/internal/store"
)

const (
	// RecentWindow is how many of the latest attempts are excluded from
	// immediate reselection.
	RecentWindow = 5

	// ReviewProbability is the chance of replacing the ranked pick with a
	// random item from the subject's weakest topic.
	ReviewProbability = 0.15

	exposurePenalty = 0.05
	spiceRange      = 30
)

// Selector picks the next quiz item for a subject.
type Selector struct {
	engine *mastery.Engine
	logger *zap.Logger
}

// NewSelector creates a selector that reads and initializes the learner
// model through engine. A nil logger disables logging.
func NewSelector(engine *mastery.Engine, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{engine: engine, logger: logger}
}

// NextItem returns the next quiz item for subject, or false when the
// subject has no quiz items.
func (s *Selector) NextItem(ctx context.Context, subject string, cat *catalog.Catalog) (catalog.Item, bool) {
	m := s.engine.InitModel(ctx, cat)
	rng := s.engine.Rand()

	pool := cat.Quizzes(subject)
	if len(pool) == 0 {
		return catalog.Item{}, false
	}

	keys := catalog.TopicKeys(pool)
	if len(keys) == 0 {
		return randomFrom(pool, rng), true
	}

	picked := weightedPick(weighTopics(m, keys, s.engine.Now()), rng)
	target := topicState(m, picked).Rating

	candidates := itemsInTopic(pool, picked)
	if len(candidates) == 0 {
		return randomFrom(pool, rng), true
	}

	recent := recentIDs(m, RecentWindow)
	best, bestScore, found := catalog.Item{}, math.Inf(1), false
	for _, it := range candidates {
		if recent[it.ID] {
			continue
		}
		score := s.score(m, it, target, rng)
		if score < bestScore {
			best, bestScore, found = it, score, true
		}
	}

	if rng.Float64() < ReviewProbability {
		weak := weakestTopic(m, keys)
		var review []catalog.Item
		for _, it := range itemsInTopic(pool, weak) {
			if !recent[it.ID] {
				review = append(review, it)
			}
		}
		if len(review) > 0 {
			it := randomFrom(review, rng)
			s.logger.Debug("review item injected",
				zap.String("item_id", it.ID),
				zap.Stringer("topic", weak))
			return it, true
		}
	}

	if !found {
		return randomFrom(candidates, rng), true
	}
	return best, true
}

// score ranks a candidate; lower is better. Items close to the target
// difficulty win, overexposed items lose a little, and a random term keeps
// the order from being fixed.
func (s *Selector) score(m *store.Model, it catalog.Item, target int, rng mastery.Rand) float64 {
	diff := mastery.InferDifficulty(it, target, rng)
	gap := math.Abs(float64(diff - target))
	var shown int
	if is, ok := m.Items[it.ID]; ok {
		shown = is.Seen
	}
	return gap + exposurePenalty*float64(shown) + rng.Float64()*spiceRange
}

func itemsInTopic(pool []catalog.Item, key catalog.TopicKey) []catalog.Item {
	var out []catalog.Item
	for _, it := range pool {
		if k, ok := it.Key(); ok && k == key {
			out = append(out, it)
		}
	}
	return out
}

// recentIDs returns the ids of the last n history entries.
func recentIDs(m *store.Model, n int) map[string]bool {
	h := m.History
	if len(h) > n {
		h = h[len(h)-n:]
	}
	out := make(map[string]bool, len(h))
	for _, e := range h {
		out[e.ID] = true
	}
	return out
}

func randomFrom(items []catalog.Item, rng mastery.Rand) catalog.Item {
	return items[rng.IntN(len(items))]
}
