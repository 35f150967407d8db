/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package rategate

import (
	"context"
	"sync"
)

// Backend stores one ordered sequence of event timestamps (Unix milliseconds) per key.
// It is the single source of truth for the Gate: the Gate holds no per-key state itself.
//
// Implementations may be process-local or remote, which is why every method
// takes a context and may block. Errors returned by a Backend are its own
// error domain; the Gate surfaces them to the caller as-is.
type Backend interface {
	// Get returns the stored timestamp sequence for the key.
	// It returns an empty sequence and no error for an absent key.
	Get(ctx context.Context, key string) ([]int64, error)

	// Set replaces the stored sequence for the key, creating it if absent.
	Set(ctx context.Context, key string, timestamps []int64) error

	// Delete removes all stored state for the key. It is a no-op for an absent key.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys currently holding any stored state, in unspecified order.
	Keys(ctx context.Context) ([]string, error)
}

// InMemoryBackend is the reference Backend implementation backed by a plain map.
// State is scoped to the process and to the lifetime of the backend instance.
//
// Each individual method is safe for concurrent use. The backend does not
// serialize the Get/Set pair performed by Gate.Hit, see the package
// documentation for the implications.
type InMemoryBackend struct {
	mu      sync.RWMutex
	entries map[string][]int64
}

var _ Backend = (*InMemoryBackend)(nil)

// NewInMemoryBackend creates a new empty InMemoryBackend.
func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{entries: make(map[string][]int64)}
}

// Get implements Backend. The returned slice is a copy and may be freely modified.
func (b *InMemoryBackend) Get(_ context.Context, key string) ([]int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stored, ok := b.entries[key]
	if !ok {
		return nil, nil
	}
	timestamps := make([]int64, len(stored))
	copy(timestamps, stored)
	return timestamps, nil
}

// Set implements Backend. The passed slice is copied before storing.
func (b *InMemoryBackend) Set(_ context.Context, key string, timestamps []int64) error {
	stored := make([]int64, len(timestamps))
	copy(stored, timestamps)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = stored
	return nil
}

// Delete implements Backend.
func (b *InMemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, key)
	return nil
}

// Keys implements Backend.
func (b *InMemoryBackend) Keys(_ context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.entries))
	for key := range b.entries {
		keys = append(keys, key)
	}
	return keys, nil
}

// Len returns the number of keys currently holding stored state.
func (b *InMemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
