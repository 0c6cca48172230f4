package scorer

import (
	"context"

	"golang.org/x/time/rate"
)

// Limited wraps a Provider with client-side rate limiting so a burst of
// claims cannot stampede the scorer API. Waiting respects the call context;
// a cancelled wait surfaces as an unavailable scorer, which extractors
// degrade from like any other failure.
type Limited struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewLimited creates a rate-limited wrapper around the given provider.
func NewLimited(provider Provider, requestsPerSecond float64, burst int) *Limited {
	if burst <= 0 {
		burst = 1
	}
	return &Limited{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the underlying provider name.
func (l *Limited) Name() string {
	return l.provider.Name()
}

// IsAvailable delegates to the underlying provider.
func (l *Limited) IsAvailable(ctx context.Context) bool {
	return l.provider.IsAvailable(ctx)
}

// Score waits for rate-limit clearance, then calls through.
func (l *Limited) Score(ctx context.Context, text string, attrs []Attribute) (*Result, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, unavailable(l.provider.Name(), err)
	}
	return l.provider.Score(ctx, text, attrs)
}
