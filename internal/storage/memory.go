// Package storage contains the key-value persistence layer used for the
// theme and preferences. Go keeps each package in its own folder; files in
// the folder share a namespace.
package storage

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned by Get when a key has never been written.
	ErrNotFound = errors.New("key not found")
)

// KV is the minimal key-value contract the persistence layer needs. Values
// are opaque strings (callers store JSON where they need structure).
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore provides an in-memory KV guarded by an RWMutex: many readers
// may hold the read lock at once, writers get exclusive access.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Set inserts or replaces a value.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Get returns the stored value.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}
