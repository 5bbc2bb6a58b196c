package mastery

import (
	"math"
	"strings"

	"github.com/abhisek/satdrill/internal/catalog"
)

// jitterSpan is the width of the uniform offset applied to unknown topics.
const jitterSpan = 120

// topicDifficulty maps topic-name fragments to a fixed difficulty. Rows are
// checked in order and the first match wins.
var topicDifficulty = []struct {
	fragments  []string
	difficulty int
}{
	{[]string{"quadratic", "exponent", "system", "function"}, 950},
	{[]string{"percent", "ratio", "proportion", "slope", "linear"}, 800},
	{[]string{"inference", "evidence", "logic", "consistency"}, 900},
	{[]string{"vocab", "context", "connotation", "tone", "precision"}, 750},
}

// InferDifficulty returns the effective difficulty of item. An explicit
// difficulty wins, then the topic table; otherwise fallback is jittered by
// up to ±60 using rng.
func InferDifficulty(item catalog.Item, fallback int, rng Rand) int {
	if d, ok := KnownDifficulty(item); ok {
		return d
	}
	offset := rng.Float64()*jitterSpan - jitterSpan/2
	return clampRating(float64(fallback) + offset)
}

// KnownDifficulty returns the explicit or topic-table difficulty of item.
// ok is false when only a jittered estimate is available.
func KnownDifficulty(item catalog.Item) (int, bool) {
	if item.Difficulty != nil && isFinite(*item.Difficulty) {
		return clampRating(*item.Difficulty), true
	}
	return TopicDifficulty(item.Topic)
}

// TopicDifficulty looks the topic name up in the heuristic table.
func TopicDifficulty(topic string) (int, bool) {
	t := strings.ToLower(topic)
	if t == "" {
		return 0, false
	}
	for _, row := range topicDifficulty {
		for _, f := range row.fragments {
			if strings.Contains(t, f) {
				return row.difficulty, true
			}
		}
	}
	return 0, false
}

// isFinite guards explicit difficulties decoded from hand-written catalogs.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
