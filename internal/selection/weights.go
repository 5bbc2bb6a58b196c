package selection

import (
	"sort"
	"time"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/mastery"
	"github.com/abhisek/satdrill/internal/store"
)

const (
	// MinTopicWeight and MaxTopicWeight bound a topic's sampling weight.
	MinTopicWeight = 0.05
	MaxTopicWeight = 3.0

	// unseenWrongRate is assumed for topics with no attempts yet.
	unseenWrongRate = 0.4
)

// weightedTopic pairs a topic with its sampling weight.
type weightedTopic struct {
	key    catalog.TopicKey
	weight float64
}

// TopicWeight returns how strongly a topic should be favoured. Weight falls
// as the rating rises and grows with the miss rate and staleness.
func TopicWeight(ts *store.TopicState, now time.Time) float64 {
	wrongRate := unseenWrongRate
	if ts.Seen > 0 {
		wrongRate = float64(ts.Wrong) / float64(ts.Seen)
	}
	masteryTerm := 1.2 - float64(ts.Rating-mastery.MinRating)/1600
	w := masteryTerm * (0.7 + wrongRate) * mastery.StalenessFactor(ts.Last, now)
	return max(MinTopicWeight, min(MaxTopicWeight, w))
}

func topicState(m *store.Model, key catalog.TopicKey) *store.TopicState {
	if ts, ok := m.Topics[key]; ok {
		return ts
	}
	return mastery.NewTopicState()
}

func weighTopics(m *store.Model, keys []catalog.TopicKey, now time.Time) []weightedTopic {
	out := make([]weightedTopic, len(keys))
	for i, k := range keys {
		out[i] = weightedTopic{key: k, weight: TopicWeight(topicState(m, k), now)}
	}
	return out
}

// weightedPick draws one topic with probability proportional to its weight.
// The first topic is returned if rounding leaves the draw unconsumed.
func weightedPick(topics []weightedTopic, rng mastery.Rand) catalog.TopicKey {
	var sum float64
	for _, t := range topics {
		sum += t.weight
	}
	r := rng.Float64() * sum
	for _, t := range topics {
		r -= t.weight
		if r <= 0 {
			return t.key
		}
	}
	return topics[0].key
}

// weakestTopic returns the lowest-rated topic. Ties keep catalog order.
func weakestTopic(m *store.Model, keys []catalog.TopicKey) catalog.TopicKey {
	sorted := append([]catalog.TopicKey(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return topicState(m, sorted[i]).Rating < topicState(m, sorted[j]).Rating
	})
	return sorted[0]
}
