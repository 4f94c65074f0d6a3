// Package cache provides the TTL stores behind the taxonomy and geocode
// caches. Stores are safe for concurrent use; they do not deduplicate
// concurrent population of the same key, the last writer wins.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrMiss indicates a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Clock returns the current time.
type Clock func() time.Time

// Store is a keyed TTL cache.
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V) error
	Clear(ctx context.Context) error
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Memory is an in-process Store. Entries are only invalidated by TTL expiry
// or Clear; there is no size bound.
type Memory[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry[V]
}

// MemoryOption configures a Memory store.
type MemoryOption[V any] func(*Memory[V])

// WithClock replaces time.Now, mostly for tests.
func WithClock[V any](clock Clock) MemoryOption[V] {
	return func(m *Memory[V]) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewMemory creates a Memory store whose entries are valid while
// now - storedAt < ttl.
func NewMemory[V any](ttl time.Duration, opts ...MemoryOption[V]) *Memory[V] {
	m := &Memory[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the value for key if it has not expired.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	var zero V
	if !ok {
		return zero, ErrMiss
	}
	if m.now().Sub(e.storedAt) >= m.ttl {
		return zero, ErrMiss
	}
	return e.value, nil
}

// Set stores value under key stamped with the current time.
func (m *Memory[V]) Set(_ context.Context, key string, value V) error {
	m.mu.Lock()
	m.entries[key] = entry[V]{value: value, storedAt: m.now()}
	m.mu.Unlock()
	return nil
}

// Delete removes a single key.
func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Clear removes every entry.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry[V])
	m.mu.Unlock()
	return nil
}

// Len is the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// TTL returns the configured time to live.
func (m *Memory[V]) TTL() time.Duration {
	return m.ttl
}

// Key joins key parts with ':'.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
