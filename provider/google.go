package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cloud.google.com/go/translate"
	"github.com/PuerkitoBio/goquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ZaguanLabs/artran"
)

// GoogleProvider implements TextProvider using the Google Cloud Translation API.
type GoogleProvider struct {
	client *translate.Client
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	APIKey   string                // API key (Application Default Credentials if empty)
	Endpoint string                // Custom endpoint (optional)
	Options  []option.ClientOption // Extra client options
}

// NewGoogleProvider creates a new Google Cloud Translation provider.
func NewGoogleProvider(ctx context.Context, cfg GoogleConfig) (*GoogleProvider, error) {
	opts := []option.ClientOption{option.WithUserAgent(artran.UserAgent())}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	opts = append(opts, cfg.Options...)

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GoogleProvider{client: client}, nil
}

// TranslateText translates one text, passing the request's model selector through.
// An empty source language lets the API detect it.
func (p *GoogleProvider) TranslateText(ctx context.Context, req TextRequest) (string, error) {
	target, err := artran.ParseLanguage(req.TargetLang)
	if err != nil {
		return "", &artran.ProviderError{Message: "invalid target language " + req.TargetLang, Cause: err}
	}

	opts := &translate.Options{
		Model:  req.Model,
		Format: detectFormat(req.Text),
	}
	if req.SourceLang != "" {
		source, err := artran.ParseLanguage(req.SourceLang)
		if err != nil {
			return "", &artran.ProviderError{Message: "invalid source language " + req.SourceLang, Cause: err}
		}
		opts.Source = source
	}

	translations, err := p.client.Translate(ctx, []string{req.Text}, target, opts)
	if err != nil {
		return "", &artran.ProviderError{
			Message:   "Google Translate call failed",
			Cause:     err,
			Retryable: isRetryableGoogleError(err),
		}
	}
	if len(translations) == 0 {
		return "", &artran.ProviderError{
			Message:   "no translation from Google",
			Retryable: true,
		}
	}

	return translations[0].Text, nil
}

// Close releases the underlying client.
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

// detectFormat sends texts with element markup as HTML so tags survive translation.
func detectFormat(text string) translate.Format {
	if !strings.Contains(text, "<") {
		return translate.Text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return translate.Text
	}
	if doc.Find("body *").Length() > 0 {
		return translate.HTML
	}
	return translate.Text
}

func isRetryableGoogleError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// Verify GoogleProvider implements TextProvider
var _ TextProvider = (*GoogleProvider)(nil)
