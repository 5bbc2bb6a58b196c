// Package dashboard summarizes the learner model into per-topic reports
// and an overall level.
package dashboard

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/mastery"
	"github.com/abhisek/satdrill/internal/store"
)

// Level is a coarse proficiency tier derived from a rating.
type Level string

const (
	LevelBronze   Level = "Bronze"
	LevelSilver   Level = "Silver"
	LevelGold     Level = "Gold"
	LevelPlatinum Level = "Platinum"
)

const (
	// MinSeenForOverall is the attempt count a topic needs before it counts
	// toward the overall rating.
	MinSeenForOverall = 3

	// highlightCount is the length of the strengths and weaknesses lists.
	highlightCount = 3
)

// LevelFor maps a rating to its tier.
func LevelFor(rating int) Level {
	switch {
	case rating < 700:
		return LevelBronze
	case rating < 900:
		return LevelSilver
	case rating < 1100:
		return LevelGold
	default:
		return LevelPlatinum
	}
}

// TopicReport is the read-only view of one topic.
type TopicReport struct {
	Key      catalog.TopicKey `json:"key"`
	Subject  string           `json:"subject"`
	Topic    string           `json:"topic"`
	Rating   int              `json:"rating"`
	Level    Level            `json:"level"`
	Seen     int              `json:"seen"`
	Correct  int              `json:"correct"`
	Wrong    int              `json:"wrong"`
	Accuracy *int             `json:"accuracy"`
	Fatigue  float64          `json:"fatigue"`
	Last     *time.Time       `json:"last"`
}

// Overall is the aggregate rating across topics.
type Overall struct {
	Rating int   `json:"rating"`
	Level  Level `json:"level"`
}

// Dashboard is the full progress report.
type Dashboard struct {
	Topics     []TopicReport `json:"topics"`
	Overall    Overall       `json:"overall"`
	Weaknesses []TopicReport `json:"weaknesses"`
	Strengths  []TopicReport `json:"strengths"`
}

// Reporter builds dashboards from the engine's model.
type Reporter struct {
	engine *mastery.Engine
}

// NewReporter creates a reporter.
func NewReporter(engine *mastery.Engine) *Reporter {
	return &Reporter{engine: engine}
}

// Dashboard initializes the model for cat and reports on every topic in it.
func (r *Reporter) Dashboard(ctx context.Context, cat *catalog.Catalog) *Dashboard {
	m := r.engine.InitModel(ctx, cat)
	return Build(m, cat.QuizTopicKeys())
}

// Build reports on m. Topics listed in order come first, followed by any
// other model topics sorted by key.
func Build(m *store.Model, order []catalog.TopicKey) *Dashboard {
	keys := topicOrder(m, order)

	d := &Dashboard{Topics: make([]TopicReport, 0, len(keys))}
	for _, k := range keys {
		d.Topics = append(d.Topics, report(k, m.Topics[k]))
	}

	d.Overall.Rating = overallRating(d.Topics)
	d.Overall.Level = LevelFor(d.Overall.Rating)

	byRating := append([]TopicReport(nil), d.Topics...)
	sort.SliceStable(byRating, func(i, j int) bool { return byRating[i].Rating < byRating[j].Rating })
	d.Weaknesses = head(byRating, highlightCount)

	byRating = append(byRating[:0:0], d.Topics...)
	sort.SliceStable(byRating, func(i, j int) bool { return byRating[i].Rating > byRating[j].Rating })
	d.Strengths = head(byRating, highlightCount)

	return d
}

func report(k catalog.TopicKey, ts *store.TopicState) TopicReport {
	tr := TopicReport{
		Key:     k,
		Subject: k.Subject,
		Topic:   k.Topic,
		Rating:  ts.Rating,
		Level:   LevelFor(ts.Rating),
		Seen:    ts.Seen,
		Correct: ts.Correct,
		Wrong:   ts.Wrong,
		Fatigue: ts.Fatigue,
		Last:    ts.Last,
	}
	if ts.Seen > 0 {
		acc := int(math.Round(float64(ts.Correct) / float64(ts.Seen) * 100))
		tr.Accuracy = &acc
	}
	return tr
}

// overallRating averages topics with enough attempts, falling back to all
// topics, and to the initial rating when there are none.
func overallRating(topics []TopicReport) int {
	var pool []TopicReport
	for _, t := range topics {
		if t.Seen >= MinSeenForOverall {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		pool = topics
	}
	if len(pool) == 0 {
		return mastery.InitialRating
	}
	var sum int
	for _, t := range pool {
		sum += t.Rating
	}
	return int(math.Round(float64(sum) / float64(len(pool))))
}

func topicOrder(m *store.Model, order []catalog.TopicKey) []catalog.TopicKey {
	keys := make([]catalog.TopicKey, 0, len(m.Topics))
	listed := make(map[catalog.TopicKey]bool, len(order))
	for _, k := range order {
		if _, ok := m.Topics[k]; ok && !listed[k] {
			listed[k] = true
			keys = append(keys, k)
		}
	}
	var rest []catalog.TopicKey
	for k := range m.Topics {
		if !listed[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].String() < rest[j].String() })
	return append(keys, rest...)
}

func head(topics []TopicReport, n int) []TopicReport {
	if len(topics) > n {
		topics = topics[:n]
	}
	return topics
}
