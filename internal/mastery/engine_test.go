package mastery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/store"
)

// scriptedRand replays fixed values and then repeats the last one.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return v % n
}

// failingBlob fails every operation.
type failingBlob struct{}

var errBlobDown = errors.New("blob down")

func (failingBlob) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBlobDown }
func (failingBlob) Set(context.Context, string, []byte) error         { return errBlobDown }
func (failingBlob) Remove(context.Context, string) error              { return errBlobDown }

// stickyBlob stores values but refuses to remove them.
type stickyBlob struct {
	*store.MemoryBlob
}

func (stickyBlob) Remove(context.Context, string) error { return errBlobDown }

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(blob store.Blob, opts ...Option) *Engine {
	opts = append([]Option{
		WithRand(NewSeededRand(7)),
		WithClock(func() time.Time { return testNow }),
	}, opts...)
	return NewEngine(store.NewModelRepo(blob, ""), opts...)
}

func mathCatalog() *catalog.Catalog {
	return catalog.MustNew([]catalog.Item{
		{ID: "math-intro", Type: catalog.TypeLesson, Subject: "math", Title: "Math intro"},
		{ID: "q1", Type: catalog.TypeQuiz, Subject: "math", Topic: "Quadratics"},
		{ID: "q2", Type: catalog.TypeQuiz, Subject: "math", Topic: "Quadratics"},
		{ID: "p1", Type: catalog.TypeQuiz, Subject: "math", Topic: "Percent"},
		{ID: "g1", Type: catalog.TypeQuiz, Subject: "math", Topic: "Geometry"},
		{ID: "math-end", Type: catalog.TypeLesson, Subject: "math", Title: "Summary: math"},
	})
}

func floatPtr(f float64) *float64 { return &f }

func mustItem(t *testing.T, cat *catalog.Catalog, id string) catalog.Item {
	t.Helper()
	it, ok := cat.Get(id)
	require.True(t, ok, "missing item %q", id)
	return it
}

func TestInferDifficulty_Explicit(t *testing.T) {
	item := catalog.Item{ID: "x", Type: catalog.TypeQuiz, Topic: "Quadratics", Difficulty: floatPtr(1200)}
	rng := NewSeededRand(1)
	for i := 0; i < 50; i++ {
		if got := InferDifficulty(item, 500+i*10, rng); got != 1200 {
			t.Fatalf("InferDifficulty = %d, want 1200", got)
		}
	}
}

func TestInferDifficulty_ExplicitClamped(t *testing.T) {
	rng := &scriptedRand{}
	tests := []struct {
		d    float64
		want int
	}{
		{2000, MaxRating},
		{-5, MinRating},
		{812.6, 813},
	}
	for _, tt := range tests {
		item := catalog.Item{ID: "x", Difficulty: floatPtr(tt.d)}
		if got := InferDifficulty(item, 800, rng); got != tt.want {
			t.Errorf("InferDifficulty(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestInferDifficulty_TopicTable(t *testing.T) {
	tests := []struct {
		topic string
		want  int
	}{
		{"Quadratics", 950},
		{"Systems of equations", 950},
		{"LINEAR equations", 800},
		{"Percentages", 800},
		{"Inference", 900},
		{"Command of Evidence", 900},
		{"Vocabulary", 750},
		{"Words in Context", 750},
		// "function" is checked before "linear".
		{"Linear functions", 950},
	}
	rng := &scriptedRand{floats: []float64{0.99}}
	for _, tt := range tests {
		item := catalog.Item{ID: "x", Topic: tt.topic}
		if got := InferDifficulty(item, 500, rng); got != tt.want {
			t.Errorf("InferDifficulty(topic=%q) = %d, want %d", tt.topic, got, tt.want)
		}
	}
}

func TestInferDifficulty_Fallback(t *testing.T) {
	item := catalog.Item{ID: "x", Topic: "Geometry"}

	assert.Equal(t, 740, InferDifficulty(item, 800, &scriptedRand{floats: []float64{0}}))
	assert.Equal(t, 800, InferDifficulty(item, 800, &scriptedRand{floats: []float64{0.5}}))
	assert.Equal(t, MinRating, InferDifficulty(item, 420, &scriptedRand{floats: []float64{0}}))

	rng := NewSeededRand(3)
	for i := 0; i < 200; i++ {
		d := InferDifficulty(item, 800, rng)
		require.GreaterOrEqual(t, d, 740)
		require.LessOrEqual(t, d, 860)
	}
}

func TestKnownDifficulty(t *testing.T) {
	tests := []struct {
		name   string
		item   catalog.Item
		want   int
		wantOK bool
	}{
		{"explicit", catalog.Item{Topic: "Geometry", Difficulty: floatPtr(1200)}, 1200, true},
		{"explicit beats table", catalog.Item{Topic: "Quadratics", Difficulty: floatPtr(500)}, 500, true},
		{"table", catalog.Item{Topic: "Quadratics"}, 950, true},
		{"unknown topic", catalog.Item{Topic: "Geometry"}, 0, false},
		{"no topic", catalog.Item{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KnownDifficulty(tt.item)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitModel_SeedsQuizTopics(t *testing.T) {
	e := newTestEngine(store.NewMemoryBlob())
	m := e.InitModel(context.Background(), mathCatalog())

	require.Len(t, m.Topics, 3)
	for _, topic := range []string{"quadratics", "percent", "geometry"} {
		ts, ok := m.Topics[catalog.NewTopicKey("math", topic)]
		require.True(t, ok, topic)
		assert.Equal(t, InitialRating, ts.Rating)
		assert.Zero(t, ts.Seen)
	}
}

func TestInitModel_Idempotent(t *testing.T) {
	ctx := context.Background()
	blob := store.NewMemoryBlob()
	cat := mathCatalog()
	e := newTestEngine(blob)

	e.InitModel(ctx, cat)
	e.RecordResult(ctx, mustItem(t, cat, "q1"), true)
	before := e.InitModel(ctx, cat)
	after := e.InitModel(ctx, cat)
	assert.Equal(t, before.Topics, after.Topics)

	// A fresh engine over the same blob sees the same state.
	reloaded := newTestEngine(blob).InitModel(ctx, cat)
	assert.Equal(t, before.Topics, reloaded.Topics)
}

func TestInitModel_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(store.NewMemoryBlob())

	m := e.InitModel(ctx, cat)
	m.Topics[catalog.NewTopicKey("math", "quadratics")].Rating = 1500

	again := e.InitModel(ctx, cat)
	assert.Equal(t, InitialRating, again.Topics[catalog.NewTopicKey("math", "quadratics")].Rating)
}

func TestRecordResult_UpdatesCounters(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(store.NewMemoryBlob())
	e.InitModel(ctx, cat)

	e.RecordResult(ctx, mustItem(t, cat, "p1"), true)
	e.RecordResult(ctx, mustItem(t, cat, "p1"), false)
	e.RecordResult(ctx, mustItem(t, cat, "p1"), true)

	m := e.InitModel(ctx, cat)
	ts := m.Topics[catalog.NewTopicKey("math", "percent")]
	assert.Equal(t, 3, ts.Seen)
	assert.Equal(t, 2, ts.Correct)
	assert.Equal(t, 1, ts.Wrong)
	assert.Equal(t, ts.Seen, ts.Correct+ts.Wrong)
	require.NotNil(t, ts.Last)
	assert.True(t, ts.Last.Equal(testNow))
	assert.InDelta(t, 0.05, ts.Fatigue, 1e-9)

	is := m.Items["p1"]
	require.NotNil(t, is)
	assert.Equal(t, 3, is.Seen)
	assert.Equal(t, 2, is.Correct)
	assert.Equal(t, 1, is.Wrong)

	require.Len(t, m.History, 3)
	assert.Equal(t, "p1", m.History[0].ID)
	assert.Equal(t, catalog.NewTopicKey("math", "percent"), m.History[0].Topic)
	assert.True(t, m.History[0].Correct)
	assert.False(t, m.History[1].Correct)
}

func TestRecordResult_FiveWrongOnQuadratics(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(store.NewMemoryBlob())
	e.InitModel(ctx, cat)

	key := catalog.NewTopicKey("math", "quadratics")
	prev := InitialRating
	for i := 0; i < 5; i++ {
		e.RecordResult(ctx, mustItem(t, cat, "q1"), false)
		got := e.InitModel(ctx, cat).Topics[key].Rating
		require.Less(t, got, prev, "attempt %d", i+1)
		prev = got
	}

	assert.Equal(t, 761, prev)
	assert.Less(t, prev, InitialRating-5*5)
	assert.GreaterOrEqual(t, prev, MinRating)

	ts := e.InitModel(ctx, cat).Topics[key]
	assert.Equal(t, 5, ts.Wrong)
	assert.InDelta(t, 1.75, ts.Fatigue, 1e-9)
}

func TestRecordResult_RatingStaysInBounds(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(store.NewMemoryBlob())
	e.InitModel(ctx, cat)

	key := catalog.NewTopicKey("math", "percent")
	for i := 0; i < 200; i++ {
		e.RecordResult(ctx, mustItem(t, cat, "p1"), false)
	}
	assert.Equal(t, MinRating, e.InitModel(ctx, cat).Topics[key].Rating)

	easy := catalog.Item{ID: "easy", Type: catalog.TypeQuiz, Subject: "math", Topic: "Percent", Difficulty: floatPtr(1600)}
	for i := 0; i < 400; i++ {
		e.RecordResult(ctx, easy, true)
		r := e.InitModel(ctx, cat).Topics[key].Rating
		require.GreaterOrEqual(t, r, MinRating)
		require.LessOrEqual(t, r, MaxRating)
	}
}

func TestRecordResult_HistoryFIFO(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(store.NewMemoryBlob())
	e.InitModel(ctx, cat)

	total := HistoryLimit + 25
	for i := 0; i < total; i++ {
		item := catalog.Item{ID: fmt.Sprintf("gen-%d", i), Type: catalog.TypeQuiz, Subject: "math", Topic: "Geometry"}
		e.RecordResult(ctx, item, i%2 == 0)
	}

	m := e.InitModel(ctx, cat)
	require.Len(t, m.History, HistoryLimit)
	assert.Equal(t, "gen-25", m.History[0].ID)
	assert.Equal(t, fmt.Sprintf("gen-%d", total-1), m.History[HistoryLimit-1].ID)
}

func TestRecordResult_NoID(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(store.NewMemoryBlob())
	before := e.InitModel(ctx, cat)

	e.RecordResult(ctx, catalog.Item{Type: catalog.TypeQuiz, Subject: "math", Topic: "Percent"}, true)

	after := e.InitModel(ctx, cat)
	assert.Equal(t, before, after)
}

func TestRecordResult_NoSubject(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(store.NewMemoryBlob())
	e.InitModel(ctx, cat)

	e.RecordResult(ctx, catalog.Item{ID: "loose", Type: catalog.TypeQuiz, Topic: "Percent"}, false)

	m := e.InitModel(ctx, cat)
	assert.Len(t, m.Topics, 3)
	assert.Equal(t, 1, m.Items["loose"].Wrong)
	require.Len(t, m.History, 1)
	assert.True(t, m.History[0].Topic.IsZero())
}

func TestRecordResult_UnknownTopicCreated(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(store.NewMemoryBlob(), WithRand(&scriptedRand{floats: []float64{0.5}}))
	e.InitModel(ctx, cat)

	e.RecordResult(ctx, catalog.Item{ID: "t1", Type: catalog.TypeQuiz, Subject: "math", Topic: "Trigonometry"}, true)

	ts := e.InitModel(ctx, cat).Topics[catalog.NewTopicKey("math", "trigonometry")]
	require.NotNil(t, ts)
	assert.Equal(t, 811, ts.Rating)
}

func TestEngine_CorruptBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	blob := store.NewMemoryBlob()
	require.NoError(t, blob.Set(ctx, store.DefaultModelKey, []byte("{not json")))

	e := newTestEngine(blob)
	m := e.InitModel(ctx, mathCatalog())
	assert.Len(t, m.Topics, 3)
	assert.Empty(t, m.History)

	// The corrupt blob was overwritten with a valid model.
	raw, found, err := blob.Get(ctx, store.DefaultModelKey)
	require.NoError(t, err)
	require.True(t, found)
	_, err = store.DecodeModel(raw)
	assert.NoError(t, err)
}

func TestEngine_WriteFailuresKeepMemoryModel(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(failingBlob{})

	m := e.InitModel(ctx, cat)
	require.Len(t, m.Topics, 3)

	e.RecordResult(ctx, mustItem(t, cat, "q1"), false)
	e.RecordResult(ctx, mustItem(t, cat, "q1"), false)

	ts := e.InitModel(ctx, cat).Topics[catalog.NewTopicKey("math", "quadratics")]
	assert.Equal(t, 2, ts.Wrong)

	e.Reset(ctx)
	ts = e.InitModel(ctx, cat).Topics[catalog.NewTopicKey("math", "quadratics")]
	assert.Zero(t, ts.Seen)
}

func TestEngine_Reset(t *testing.T) {
	ctx := context.Background()
	blob := store.NewMemoryBlob()
	cat := mathCatalog()
	e := newTestEngine(blob)

	e.InitModel(ctx, cat)
	e.RecordResult(ctx, mustItem(t, cat, "q1"), true)
	e.Reset(ctx)

	_, found, err := blob.Get(ctx, store.DefaultModelKey)
	require.NoError(t, err)
	assert.False(t, found)

	m := e.InitModel(ctx, cat)
	assert.Empty(t, m.History)
	assert.Empty(t, m.Items)
	for _, ts := range m.Topics {
		assert.Equal(t, InitialRating, ts.Rating)
	}
}

func TestEngine_ResetSurvivesRemoveFailure(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	e := newTestEngine(stickyBlob{store.NewMemoryBlob()})

	e.InitModel(ctx, cat)
	for range 3 {
		e.RecordResult(ctx, mustItem(t, cat, "q1"), false)
	}
	e.Reset(ctx)

	m := e.InitModel(ctx, cat)
	ts := m.Topics[catalog.NewTopicKey("math", "quadratics")]
	require.NotNil(t, ts)
	assert.Zero(t, ts.Seen)
	assert.Equal(t, InitialRating, ts.Rating)
	assert.Empty(t, m.History)
	assert.Empty(t, m.Items)
}

func TestEngine_SeparatorInSubjectSurvivesReload(t *testing.T) {
	ctx := context.Background()
	blob := store.NewMemoryBlob()
	cat := catalog.MustNew([]catalog.Item{
		{ID: "a1", Type: catalog.TypeQuiz, Subject: "sat::math", Topic: "algebra"},
	})
	key := catalog.NewTopicKey("sat::math", "algebra")

	first := newTestEngine(blob)
	first.InitModel(ctx, cat)
	first.RecordResult(ctx, mustItem(t, cat, "a1"), true)

	m := newTestEngine(blob).InitModel(ctx, cat)
	require.Len(t, m.Topics, 1)
	ts := m.Topics[key]
	require.NotNil(t, ts)
	assert.Equal(t, 1, ts.Seen)
	require.Len(t, m.History, 1)
	assert.Equal(t, key, m.History[0].Topic)
}

func TestEngine_IndependentSessions(t *testing.T) {
	ctx := context.Background()
	cat := mathCatalog()
	a := newTestEngine(store.NewMemoryBlob())
	b := newTestEngine(store.NewMemoryBlob())

	a.InitModel(ctx, cat)
	b.InitModel(ctx, cat)
	a.RecordResult(ctx, mustItem(t, cat, "q1"), true)

	assert.Len(t, a.InitModel(ctx, cat).History, 1)
	assert.Empty(t, b.InitModel(ctx, cat).History)
}
