package kv

import (
	"context"
	"sync"
)

// memory is an in-memory map-based Store implementation.
// Concurrency-safe via RWMutex; state is lost when the process restarts.
type memory struct {
	mu     sync.RWMutex      // guards values
	values map[string][]byte // copies, never aliased to caller slices
}

// NewMemory constructs a new in-memory Store.
func NewMemory() Store {
	return &memory{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memory) Close() error { return nil }
