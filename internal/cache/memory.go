package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a TTL-evicted in-process cache for scorer responses.
type Memory struct {
	inner *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL and
// background cleanup interval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{inner: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value.
func (m *Memory) Get(key string) ([]byte, bool) {
	val, found := m.inner.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	return data, ok
}

// Set stores a value under the given TTL.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.inner.Set(key, value, ttl)
	return nil
}

// Delete removes a value.
func (m *Memory) Delete(key string) error {
	m.inner.Delete(key)
	return nil
}

// Clear drops every entry.
func (m *Memory) Clear() error {
	m.inner.Flush()
	return nil
}
