package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/satdrill/internal/catalog"
)

// ModelVersion is written into every persisted model.
const ModelVersion = 1

// TopicState is the learner's mastery estimate for one topic.
type TopicState struct {
	Rating  int        `json:"rating"`
	Seen    int        `json:"seen"`
	Correct int        `json:"correct"`
	Wrong   int        `json:"wrong"`
	Fatigue float64    `json:"fatigue"`
	Last    *time.Time `json:"last,omitempty"`
}

// ItemState counts how often a single item was answered.
type ItemState struct {
	Seen     int        `json:"seen"`
	Correct  int        `json:"correct"`
	Wrong    int        `json:"wrong"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

// HistoryEntry is one graded attempt. Topic is the zero key when the item
// had no subject.
type HistoryEntry struct {
	ID        string           `json:"id"`
	Subject   string           `json:"subject,omitempty"`
	Topic     catalog.TopicKey `json:"topic"`
	Correct   bool             `json:"correct"`
	Timestamp time.Time        `json:"ts"`
}

// Model is the whole persisted learner state. It is always read and written
// as a single blob.
type Model struct {
	Version int                              `json:"version"`
	Topics  map[catalog.TopicKey]*TopicState `json:"topics"`
	Items   map[string]*ItemState            `json:"items"`
	History []HistoryEntry                   `json:"history"`
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Version: ModelVersion,
		Topics:  make(map[catalog.TopicKey]*TopicState),
		Items:   make(map[string]*ItemState),
	}
}

// DecodeModel parses a persisted blob. Missing maps are initialized so the
// result is always safe to mutate.
func DecodeModel(b []byte) (*Model, error) {
	m := NewModel()
	if err := json.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if m.Topics == nil {
		m.Topics = make(map[catalog.TopicKey]*TopicState)
	}
	if m.Items == nil {
		m.Items = make(map[string]*ItemState)
	}
	for k, st := range m.Topics {
		if st == nil {
			delete(m.Topics, k)
		}
	}
	for id, st := range m.Items {
		if st == nil {
			delete(m.Items, id)
		}
	}
	if m.Version == 0 {
		m.Version = ModelVersion
	}
	return m, nil
}

// Encode serializes the model.
func (m *Model) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Clone returns a deep copy.
func (m *Model) Clone() *Model {
	out := &Model{
		Version: m.Version,
		Topics:  make(map[catalog.TopicKey]*TopicState, len(m.Topics)),
		Items:   make(map[string]*ItemState, len(m.Items)),
		History: make([]HistoryEntry, len(m.History)),
	}
	for k, st := range m.Topics {
		c := *st
		c.Last = cloneTime(st.Last)
		out.Topics[k] = &c
	}
	for id, st := range m.Items {
		c := *st
		c.LastSeen = cloneTime(st.LastSeen)
		out.Items[id] = &c
	}
	copy(out.History, m.History)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
