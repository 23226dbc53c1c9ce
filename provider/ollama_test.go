package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZaguanLabs/artran"
)

func newOllamaServer(t *testing.T, status int, reply string) (*httptest.Server, *ollamaChatRequest) {
	t.Helper()
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Role: "assistant", Content: reply}})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestNewOllamaProvider_Defaults(t *testing.T) {
	p := NewOllamaProvider(OllamaConfig{})

	if p.Model() != "llama3.1" {
		t.Errorf("Model = %q, want %q", p.Model(), "llama3.1")
	}
	if p.baseURL != "http://localhost:11434" {
		t.Errorf("baseURL = %q", p.baseURL)
	}
}

func TestOllamaProvider_TranslateText(t *testing.T) {
	srv, got := newOllamaServer(t, http.StatusOK, "  Hello\n")
	p := NewOllamaProvider(OllamaConfig{BaseURL: srv.URL + "/", Model: "mistral"})

	text, err := p.TranslateText(context.Background(), TextRequest{
		Text:       "Hola",
		SourceLang: "es",
		TargetLang: "en",
		Model:      artran.ModelNMT,
	})
	if err != nil {
		t.Fatalf("TranslateText failed: %v", err)
	}
	if text != "Hello" {
		t.Errorf("TranslateText = %q, want %q", text, "Hello")
	}

	if got.Model != "mistral" || got.Stream {
		t.Errorf("unexpected request: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[1].Content != "Hola" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
	if !strings.Contains(got.Messages[0].Content, "from Spanish into English") {
		t.Errorf("system prompt should name the languages: %s", got.Messages[0].Content)
	}
}

func TestOllamaProvider_Errors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		reply         string
		wantRetryable bool
	}{
		{"server error", http.StatusInternalServerError, "", true},
		{"model missing", http.StatusNotFound, "", false},
		{"empty reply", http.StatusOK, "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newOllamaServer(t, tt.status, tt.reply)
			p := NewOllamaProvider(OllamaConfig{BaseURL: srv.URL})

			_, err := p.TranslateText(context.Background(), TextRequest{Text: "Hola", SourceLang: "es", TargetLang: "en"})

			var providerErr *artran.ProviderError
			if !errors.As(err, &providerErr) {
				t.Fatalf("Expected ProviderError, got %v", err)
			}
			if providerErr.Retryable != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", providerErr.Retryable, tt.wantRetryable)
			}
		})
	}
}

func TestOllamaProvider_BlankText(t *testing.T) {
	p := NewOllamaProvider(OllamaConfig{BaseURL: "http://127.0.0.1:0"})

	text, err := p.TranslateText(context.Background(), TextRequest{Text: "  ", TargetLang: "en"})
	if err != nil || text != "  " {
		t.Errorf("TranslateText() = %q, %v; want blank text unchanged", text, err)
	}
}
