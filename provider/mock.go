package provider

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockProvider is a mock translation provider for testing. It is safe for concurrent use.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Failures     map[string]error  // Texts that fail with the given error
	Delay        time.Duration     // Simulated round trip

	mu          sync.Mutex
	calls       map[string]int
	callCount   int
	lastRequest *TextRequest
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hola":         "Hello",
			"Mundo":        "World",
			"Mundo grande": "Big world",
			"uno":          "one",
			"dos":          "two",
		},
		Failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// TranslateText returns mock translations.
func (m *MockProvider) TranslateText(ctx context.Context, req TextRequest) (string, error) {
	m.mu.Lock()
	m.callCount++
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[req.Text]++
	m.lastRequest = &req
	translation, ok := m.Translations[req.Text]
	failure := m.Failures[req.Text]
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.Delay):
		}
	}

	if failure != nil {
		return "", failure
	}
	if ok {
		return translation, nil
	}
	// Return bracketed text for unknown translations
	return fmt.Sprintf("[%s]", req.Text), nil
}

// Fail makes every request for text fail with err.
func (m *MockProvider) Fail(text string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Failures == nil {
		m.Failures = make(map[string]error)
	}
	m.Failures[text] = err
}

// CallCount returns the number of TranslateText calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Calls returns the number of TranslateText calls for text.
func (m *MockProvider) Calls(text string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[text]
}

// LastRequest returns the last request received, or nil.
func (m *MockProvider) LastRequest() *TextRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call counters and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.calls = make(map[string]int)
	m.lastRequest = nil
}

// Verify MockProvider implements TextProvider
var _ TextProvider = (*MockProvider)(nil)
