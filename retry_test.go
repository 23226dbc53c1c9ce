package artran

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"
)

func fastRetry(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	}
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastRetry(3), func(ctx context.Context) (string, error) {
		calls++
		return "Hello", nil
	})

	if err != nil || got != "Hello" {
		t.Fatalf("Retry() = %q, %v", got, err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestRetry_TransientFailures(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastRetry(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &ProviderError{Message: "503", Retryable: true}
		}
		return "Hello", nil
	})

	if err != nil || got != "Hello" {
		t.Fatalf("Retry() = %q, %v", got, err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestRetry_PermanentFailure(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(3), func(ctx context.Context) (string, error) {
		calls++
		return "", &ProviderError{Message: "unsupported language pair", Retryable: false}
	})

	if err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 {
		t.Errorf("Permanent failures must not be retried, got %d calls", calls)
	}
}

func TestRetry_Exhausted(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(2), func(ctx context.Context) (int, error) {
		calls++
		return 0, &ProviderError{Message: fmt.Sprintf("attempt %d", calls), Retryable: true}
	})

	if calls != 3 {
		t.Errorf("Expected 3 calls (1 + 2 retries), got %d", calls)
	}
	if err == nil || !strings.Contains(err.Error(), "attempt 3") {
		t.Errorf("Expected the last error, got %v", err)
	}
}

func TestRetry_CancelledWhileWaiting(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 5, BaseDelay: time.Minute, MaxDelay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Retry(ctx, cfg, func(ctx context.Context) (string, error) {
		calls++
		cancel()
		return "", &ProviderError{Message: "429", Retryable: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestRetryConfig_Backoff(t *testing.T) {
	cfg := RetryConfig{BaseDelay: 10 * time.Millisecond, MaxDelay: 50 * time.Millisecond}

	want := []time.Duration{10, 20, 40, 50, 50}
	for n, w := range want {
		if got := cfg.backoff(n); got != w*time.Millisecond {
			t.Errorf("backoff(%d) = %v, want %v", n, got, w*time.Millisecond)
		}
	}

	if got := cfg.backoff(100); got != cfg.MaxDelay {
		t.Errorf("backoff(100) = %v, want %v", got, cfg.MaxDelay)
	}

	cfg.Jitter = 0.5
	for i := 0; i < 100; i++ {
		got := cfg.backoff(1)
		if got < 10*time.Millisecond || got > 30*time.Millisecond {
			t.Fatalf("jittered backoff(1) = %v, want within [10ms, 30ms]", got)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"retryable provider error", &ProviderError{Retryable: true}, true},
		{"permanent provider error", &ProviderError{Retryable: false}, false},
		{"wrapped retryable", fmt.Errorf("load: %w", &ProviderError{Retryable: true}), true},
		{"plain error", errors.New("boom"), false},
		{"canceled", context.Canceled, false},
		{"deadline inside provider error", &ProviderError{Cause: context.DeadlineExceeded, Retryable: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxRetries != 3 || cfg.BaseDelay <= 0 || cfg.MaxDelay < cfg.BaseDelay {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestRetryableProvider_LogsRetries(t *testing.T) {
	p := newStubProvider(map[string]string{"Hola": "Hello"})
	p.fail("Hola", &ProviderError{Message: "502 Bad Gateway", Retryable: true})

	var logs bytes.Buffer
	cfg := fastRetry(2)
	cfg.Logger = log.New(&logs, "", 0)
	rp := NewRetryableProvider(p, cfg)

	req := TextRequest{Text: "Hola", SourceLang: "es", TargetLang: "en", Model: ModelNMT}
	if _, err := rp.TranslateText(context.Background(), req); err == nil {
		t.Fatal("Expected error")
	}
	if p.callCount("Hola") != 3 {
		t.Errorf("Expected 3 calls, got %d", p.callCount("Hola"))
	}
	if n := strings.Count(logs.String(), "artran: retry "); n != 2 {
		t.Errorf("Expected 2 retry log lines, got %d: %s", n, logs.String())
	}

	p.heal("Hola")
	got, err := rp.TranslateText(context.Background(), req)
	if err != nil || got != "Hello" {
		t.Errorf("TranslateText() = %q, %v", got, err)
	}
}
