package artran

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures RateLimitedProvider.
type RateLimitConfig struct {
	RequestsPerMinute int // Sustained request rate (default: 60)
	BurstSize         int // Requests allowed back to back (default: RequestsPerMinute)
}

// RateLimitedProvider keeps calls to the wrapped provider under a request
// rate. Only cache misses reach it, so hits are never throttled.
type RateLimitedProvider struct {
	provider TextProvider
	limiter  *rate.Limiter
}

// NewRateLimitedProvider creates a new rate limited provider.
func NewRateLimitedProvider(provider TextProvider, cfg RateLimitConfig) *RateLimitedProvider {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = rpm
	}

	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(float64(rpm)/60), burst),
	}
}

// TranslateText waits for a request slot, then calls the wrapped provider.
// A wait that cannot finish before ctx ends fails without calling upstream.
func (p *RateLimitedProvider) TranslateText(ctx context.Context, req TextRequest) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", &ProviderError{Message: "rate limit wait aborted", Cause: err}
	}
	return p.provider.TranslateText(ctx, req)
}

// Limiter returns the underlying limiter.
func (p *RateLimitedProvider) Limiter() *rate.Limiter {
	return p.limiter
}
