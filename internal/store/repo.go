package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrCorruptModel is returned by Load when the stored blob cannot be parsed.
var ErrCorruptModel = errors.New("store: corrupt learner model")

// ModelRepo reads and writes the learner model as one blob under one key.
type ModelRepo struct {
	blob Blob
	key  string
}

// NewModelRepo creates a repo over blob. An empty key selects
// DefaultModelKey.
func NewModelRepo(blob Blob, key string) *ModelRepo {
	if key == "" {
		key = DefaultModelKey
	}
	return &ModelRepo{blob: blob, key: key}
}

// Key returns the blob key the model lives under.
func (r *ModelRepo) Key() string {
	return r.key
}

// Load returns the stored model, or nil when none has been saved yet.
func (r *ModelRepo) Load(ctx context.Context) (*Model, error) {
	b, found, err := r.blob.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	if !found || len(b) == 0 {
		return nil, nil
	}
	m, err := DecodeModel(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	return m, nil
}

// Save overwrites the stored model.
func (r *ModelRepo) Save(ctx context.Context, m *Model) error {
	b, err := m.Encode()
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return r.blob.Set(ctx, r.key, b)
}

// Clear removes the stored model.
func (r *ModelRepo) Clear(ctx context.Context) error {
	return r.blob.Remove(ctx, r.key)
}
