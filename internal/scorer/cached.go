package scorer

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/avolokh/lazaret/internal/cache"
)

// Cached wraps a Provider with an injected response cache. Identical
// text+attribute requests within the TTL are served without a scorer call.
// Errors are never cached: a degraded extractor should retry on the next
// claim, not replay yesterday's outage.
type Cached struct {
	provider Provider
	cache    cache.Cache
	ttl      time.Duration
}

// NewCached creates a caching wrapper around the given provider.
func NewCached(provider Provider, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{provider: provider, cache: c, ttl: ttl}
}

// Name returns the underlying provider name.
func (c *Cached) Name() string {
	return c.provider.Name()
}

// IsAvailable delegates to the underlying provider.
func (c *Cached) IsAvailable(ctx context.Context) bool {
	return c.provider.IsAvailable(ctx)
}

// Score serves from cache when possible, otherwise calls through and
// stores the result.
func (c *Cached) Score(ctx context.Context, text string, attrs []Attribute) (*Result, error) {
	key := cacheKey(c.provider.Name(), text, attrs)

	if data, found := c.cache.Get(key); found {
		var result Result
		if err := json.Unmarshal(data, &result); err == nil {
			return &result, nil
		}
		// Corrupt entry: drop it and fall through to a fresh call.
		_ = c.cache.Delete(key)
	}

	result, err := c.provider.Score(ctx, text, attrs)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = c.cache.Set(key, data, c.ttl)
	}

	return result, nil
}

func cacheKey(provider, text string, attrs []Attribute) string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = string(a)
	}
	sort.Strings(names)
	return cache.Key(provider + "|" + strings.Join(names, ",") + "|" + text)
}
