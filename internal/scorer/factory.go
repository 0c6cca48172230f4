package scorer

import (
	"fmt"
	"strings"
	"time"

	"github.com/avolokh/lazaret/internal/cache"
	"github.com/avolokh/lazaret/internal/model"
)

// NewProvider creates a scorer provider from configuration. An empty
// provider name disables scoring: callers receive nil and every extractor
// that needs the scorer degrades to its documented neutral value.
func NewProvider(cfg model.ScorerConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "anthropic", "claude":
		return NewAnthropicProvider(cfg)

	case "ollama":
		return NewOllamaProvider(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown scorer provider: %s (supported: openai, anthropic, ollama)", cfg.Provider)
	}
}

// Build creates the fully wrapped scorer from configuration: provider,
// rate limiter, then response cache. Returns nil when scoring is disabled.
func Build(cfg model.ScorerConfig) (Provider, error) {
	provider, err := NewProvider(cfg)
	if err != nil || provider == nil {
		return nil, err
	}

	if cfg.RequestsPerSecond > 0 {
		provider = NewLimited(provider, cfg.RequestsPerSecond, cfg.Burst)
	}

	if cfg.CacheTTL > 0 {
		ttl := time.Duration(cfg.CacheTTL) * time.Second
		cleanup := time.Duration(cfg.CacheCleanup) * time.Second
		if cleanup <= 0 {
			cleanup = 2 * ttl
		}
		provider = NewCached(provider, cache.NewMemory(ttl, cleanup), ttl)
	}

	return provider, nil
}
