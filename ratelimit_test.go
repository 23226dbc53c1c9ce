package artran

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestNewRateLimitedProvider_Defaults(t *testing.T) {
	rp := NewRateLimitedProvider(newStubProvider(nil), RateLimitConfig{})

	if got := rp.Limiter().Limit(); got != rate.Limit(1) {
		t.Errorf("Limit = %v, want 1/s", got)
	}
	if got := rp.Limiter().Burst(); got != 60 {
		t.Errorf("Burst = %d, want 60", got)
	}

	rp = NewRateLimitedProvider(newStubProvider(nil), RateLimitConfig{RequestsPerMinute: 120, BurstSize: 5})
	if rp.Limiter().Limit() != rate.Limit(2) || rp.Limiter().Burst() != 5 {
		t.Errorf("unexpected limiter: limit=%v burst=%d", rp.Limiter().Limit(), rp.Limiter().Burst())
	}
}

func TestRateLimitedProvider_BurstThenThrottle(t *testing.T) {
	p := newStubProvider(map[string]string{"Hola": "Hello"})
	// One request per minute after a burst of two
	rp := NewRateLimitedProvider(p, RateLimitConfig{RequestsPerMinute: 1, BurstSize: 2})
	req := TextRequest{Text: "Hola", SourceLang: "es", TargetLang: "en"}

	for i := 0; i < 2; i++ {
		got, err := rp.TranslateText(context.Background(), req)
		if err != nil || got != "Hello" {
			t.Fatalf("call %d: TranslateText() = %q, %v", i, got, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := rp.TranslateText(ctx, req)
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if providerErr.Retryable {
		t.Error("an aborted wait should not be retried")
	}
	if p.callCount("Hola") != 2 {
		t.Errorf("throttled call must not reach upstream, calls = %d", p.callCount("Hola"))
	}
}

func TestRateLimitedProvider_CancelledContext(t *testing.T) {
	p := newStubProvider(nil)
	rp := NewRateLimitedProvider(p, RateLimitConfig{RequestsPerMinute: 60})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rp.TranslateText(ctx, TextRequest{Text: "Hola"}); err == nil {
		t.Error("Expected error for cancelled context")
	}
	if p.totalCalls() != 0 {
		t.Errorf("Expected no upstream calls, got %d", p.totalCalls())
	}
}

func TestRateLimitedProvider_Concurrent(t *testing.T) {
	p := newStubProvider(nil)
	rp := NewRateLimitedProvider(p, RateLimitConfig{RequestsPerMinute: 60, BurstSize: 20})

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := rp.TranslateText(context.Background(), TextRequest{Text: "x"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error within burst: %v", err)
	}
	if p.totalCalls() != 20 {
		t.Errorf("Expected 20 calls, got %d", p.totalCalls())
	}
}
