package artran

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	Name        string        // Breaker name used in logs (default: "translate")
	MaxFailures uint32        // Consecutive failures that open the breaker (default: 5)
	OpenTimeout time.Duration // Time spent open before probing again (default: 30s)
	Logger      *log.Logger   // Receives state changes (default: log.Default())
}

// BreakerProvider wraps a TextProvider with a circuit breaker so an unhealthy
// upstream is not hammered by every cache miss.
type BreakerProvider struct {
	provider TextProvider
	breaker  *gobreaker.CircuitBreaker
}

// NewBreakerProvider creates a new provider guarded by a circuit breaker.
func NewBreakerProvider(provider TextProvider, cfg BreakerConfig) *BreakerProvider {
	if cfg.Name == "" {
		cfg.Name = "translate"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// Rejected requests (bad language pair, etc.) say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || isRequestError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			cfg.Logger.Printf("artran: circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &BreakerProvider{
		provider: provider,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

// TranslateText implements TextProvider through the circuit breaker.
func (p *BreakerProvider) TranslateText(ctx context.Context, req TextRequest) (string, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.provider.TranslateText(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", &ProviderError{
			Message:   "circuit breaker " + p.breaker.Name() + " rejected call",
			Cause:     err,
			Retryable: false,
		}
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// State returns the current breaker state.
func (p *BreakerProvider) State() gobreaker.State {
	return p.breaker.State()
}

// isRequestError reports whether err is a permanent, request-specific provider failure.
func isRequestError(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr) && !providerErr.Retryable
}
