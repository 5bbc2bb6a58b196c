package store

import (
	"context"
	"sync"
)

// DefaultModelKey is the key under which the learner model is stored.
const DefaultModelKey = "satx_user_model_v1"

// Blob is a minimal key-value store for opaque values.
// Get reports found=false, with a nil error, for a missing key.
type Blob interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// MemoryBlob is an in-process Blob, used for tests and ephemeral sessions.
type MemoryBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBlob creates an empty in-memory store.
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{data: make(map[string][]byte)}
}

func (m *MemoryBlob) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBlob) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBlob) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBlob) Close() error { return nil }
