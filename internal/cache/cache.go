package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching. The engine never owns caching
// policy itself; a cache is always injected with an explicit TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a versioned cache key from arbitrary input.
func Key(input string) string {
	hash := sha256.Sum256([]byte(input))
	return "lazaret:v1:" + hex.EncodeToString(hash[:])
}
