package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ZaguanLabs/artran"
)

// OllamaProvider implements TextProvider with the chat API of an Ollama server.
type OllamaProvider struct {
	http    *resty.Client
	baseURL string
	model   string
}

// OllamaConfig holds configuration for the Ollama provider.
type OllamaConfig struct {
	BaseURL string        // Server URL (default: "http://localhost:11434")
	Model   string        // Model to use (default: "llama3.1")
	Timeout time.Duration // Per request timeout (default: 60s)
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(cfg OllamaConfig) *OllamaProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", artran.UserAgent()).
		SetHeader("Content-Type", "application/json")

	return &OllamaProvider{
		http:    client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
}

// TranslateText translates one text. Like OpenAIProvider it ignores the
// request's model selector in favor of the configured model.
func (p *OllamaProvider) TranslateText(ctx context.Context, req TextRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req.Text, nil
	}

	body := ollamaChatRequest{
		Model: p.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: systemPrompt(req)},
			{Role: "user", Content: req.Text},
		},
		Options: map[string]any{"temperature": 0},
	}

	var resp ollamaChatResponse
	r, err := p.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&resp).
		Post(p.baseURL + "/api/chat")
	if err != nil {
		return "", &artran.ProviderError{
			Message:   "Ollama request failed",
			Cause:     err,
			Retryable: !errors.Is(err, context.Canceled),
		}
	}
	if r.IsError() {
		return "", &artran.ProviderError{
			Message:   fmt.Sprintf("Ollama translate: %s", r.Status()),
			Retryable: r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500,
		}
	}

	content := strings.TrimSpace(resp.Message.Content)
	if content == "" {
		return "", &artran.ProviderError{
			Message:   "empty response from Ollama",
			Retryable: true,
		}
	}
	return content, nil
}

// Model returns the model used for translations.
func (p *OllamaProvider) Model() string {
	return p.model
}

// Verify OllamaProvider implements TextProvider
var _ TextProvider = (*OllamaProvider)(nil)
