package artran

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"time"
)

// RetryConfig controls how failed provider calls are retried.
type RetryConfig struct {
	MaxRetries int           // Retries after the first attempt
	BaseDelay  time.Duration // Delay before the first retry, doubled for each further one
	MaxDelay   time.Duration // Upper bound for a single delay
	Jitter     float64       // Fraction of each delay that is randomized, 0 to 1
	Logger     *log.Logger   // Receives one line per retry (nil: silent)
}

// DefaultRetryConfig returns the retry settings used by the CLI and worker.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Jitter:     0.2,
	}
}

// backoff returns the delay before retry n, counting from zero.
func (c RetryConfig) backoff(n int) time.Duration {
	d := c.BaseDelay << min(n, 32)
	if c.MaxDelay > 0 && (d > c.MaxDelay || d < 0) {
		d = c.MaxDelay
	}

	if c.Jitter > 0 {
		spread := float64(d) * min(c.Jitter, 1)
		d = time.Duration(float64(d) - spread + rand.Float64()*2*spread)
	}
	return max(d, 0)
}

// Retry calls fn until it succeeds, returns an error IsRetryable rejects, or
// MaxRetries is used up. The last error is returned in the latter cases.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) || attempt >= cfg.MaxRetries {
			return zero, err
		}

		delay := cfg.backoff(attempt)
		if cfg.Logger != nil {
			cfg.Logger.Printf("artran: retry %d/%d in %v: %v", attempt+1, cfg.MaxRetries, delay.Round(time.Millisecond), err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// IsRetryable reports whether err is a transient provider failure.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Retryable
}

// RetryableProvider retries transient failures of the wrapped provider.
type RetryableProvider struct {
	provider TextProvider
	config   RetryConfig
}

// NewRetryableProvider creates a new provider with retry logic.
func NewRetryableProvider(provider TextProvider, cfg RetryConfig) *RetryableProvider {
	return &RetryableProvider{
		provider: provider,
		config:   cfg,
	}
}

// TranslateText implements TextProvider.
func (p *RetryableProvider) TranslateText(ctx context.Context, req TextRequest) (string, error) {
	return Retry(ctx, p.config, func(ctx context.Context) (string, error) {
		return p.provider.TranslateText(ctx, req)
	})
}
