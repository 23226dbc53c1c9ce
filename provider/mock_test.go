package provider

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()

	got, err := m.TranslateText(context.Background(), TextRequest{Text: "Hola", SourceLang: "es", TargetLang: "en"})
	if err != nil {
		t.Fatalf("TranslateText failed: %v", err)
	}
	if got != "Hello" {
		t.Errorf("TranslateText = %q, want %q", got, "Hello")
	}

	got, _ = m.TranslateText(context.Background(), TextRequest{Text: "desconocido"})
	if got != "[desconocido]" {
		t.Errorf("unknown text should be bracketed, got %q", got)
	}

	if m.CallCount() != 2 {
		t.Errorf("CallCount = %d, want 2", m.CallCount())
	}
	if m.LastRequest() == nil || m.LastRequest().Text != "desconocido" {
		t.Errorf("unexpected LastRequest: %+v", m.LastRequest())
	}

	m.Reset()
	if m.CallCount() != 0 || m.LastRequest() != nil {
		t.Error("Reset should clear counters")
	}
}

func TestMockProvider_Fail(t *testing.T) {
	m := NewMockProvider()
	boom := errors.New("boom")
	m.Fail("Hola", boom)

	if _, err := m.TranslateText(context.Background(), TextRequest{Text: "Hola"}); !errors.Is(err, boom) {
		t.Errorf("expected injected failure, got %v", err)
	}
	if m.Calls("Hola") != 1 {
		t.Errorf("Calls(Hola) = %d, want 1", m.Calls("Hola"))
	}
}

func TestMockProvider_Concurrent(t *testing.T) {
	m := NewMockProvider()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.TranslateText(context.Background(), TextRequest{Text: "uno"})
		}()
	}
	wg.Wait()

	if m.Calls("uno") != 50 {
		t.Errorf("Calls(uno) = %d, want 50", m.Calls("uno"))
	}
}
