package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ZaguanLabs/artran"
	"github.com/ZaguanLabs/artran/cache"
	"github.com/ZaguanLabs/artran/provider"
)

func noopClose() error { return nil }

// newBaseProvider creates the upstream translation service client.
func newBaseProvider(ctx context.Context, cfg config) (artran.TextProvider, func() error, error) {
	switch cfg.Provider {
	case "google":
		p, err := provider.NewGoogleProvider(ctx, provider.GoogleConfig{APIKey: cfg.GoogleAPIKey})
		if err != nil {
			return nil, nil, fmt.Errorf("creating Google client: %w", err)
		}
		return p, p.Close, nil

	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, nil, fmt.Errorf("OpenAI API key required (openai.api_key or OPENAI_API_KEY env)")
		}
		p := provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		return p, noopClose, nil

	case "ollama":
		p := provider.NewOllamaProvider(provider.OllamaConfig{
			BaseURL: cfg.OllamaURL,
			Model:   cfg.OllamaModel,
		})
		return p, noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown provider %q (want google, openai or ollama)", cfg.Provider)
	}
}

// wrapProvider layers rate limiting, retries, the circuit breaker and the
// shared store around p, innermost first.
func wrapProvider(ctx context.Context, p artran.TextProvider, cfg config, logger *log.Logger) (artran.TextProvider, func() error, error) {
	if cfg.RateLimitRPM > 0 {
		p = artran.NewRateLimitedProvider(p, artran.RateLimitConfig{RequestsPerMinute: cfg.RateLimitRPM})
	}

	if cfg.RetryMax > 0 {
		retry := artran.DefaultRetryConfig()
		retry.MaxRetries = cfg.RetryMax
		p = artran.NewRetryableProvider(p, retry)
	}

	if cfg.BreakerEnabled {
		p = artran.NewBreakerProvider(p, artran.BreakerConfig{Logger: logger})
	}

	if cfg.RedisURL == "" {
		return p, noopClose, nil
	}

	store, err := cache.NewRedisStore(ctx, cache.RedisConfig{URL: cfg.RedisURL, TTL: cfg.RedisTTL})
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to Redis: %w", err)
	}
	return artran.NewStoreBackedProvider(p, store, logger), store.Close, nil
}
