package artran

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Field names reported in FieldResult and FieldTranslationError.
const (
	FieldTitle       = "title"
	FieldText        = "text"
	FieldDescription = "description"
	FieldKeywords    = "keywords"
)

// summaryRunes is how much of a field's text is echoed in error logs.
const summaryRunes = 5

// RecordTranslator translates the text fields of a Record through a TranslationCache.
type RecordTranslator struct {
	cache             *TranslationCache
	logger            *log.Logger
	concurrency       int
	recordConcurrency int
}

// TranslatorOption is a functional option for configuring the RecordTranslator.
type TranslatorOption func(*RecordTranslator)

// WithLogger sets the logger that receives field and record failures.
func WithLogger(logger *log.Logger) TranslatorOption {
	return func(t *RecordTranslator) {
		t.logger = logger
	}
}

// WithConcurrency sets how many fields of one record are translated at once (default: 4).
func WithConcurrency(n int) TranslatorOption {
	return func(t *RecordTranslator) {
		t.concurrency = n
	}
}

// WithRecordConcurrency sets how many records TranslateAll works on at once (default: 2).
func WithRecordConcurrency(n int) TranslatorOption {
	return func(t *RecordTranslator) {
		t.recordConcurrency = n
	}
}

// NewRecordTranslator creates a RecordTranslator backed by the given cache.
func NewRecordTranslator(c *TranslationCache, opts ...TranslatorOption) *RecordTranslator {
	t := &RecordTranslator{
		cache:             c,
		logger:            log.Default(),
		concurrency:       4,
		recordConcurrency: 2,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.concurrency < 1 {
		t.concurrency = 1
	}
	if t.recordConcurrency < 1 {
		t.recordConcurrency = 1
	}

	return t
}

// Translate returns a copy of rec in language to. Fields that fail to translate
// are left empty and logged; they never cause an error. A non-nil error is
// returned only when rec itself is missing, together with a placeholder record.
func (t *RecordTranslator) Translate(ctx context.Context, rec *Record, to string) (*Record, error) {
	res, err := t.TranslateDetailed(ctx, rec, to)
	return res.Record, err
}

// TranslateDetailed is like Translate but also reports the outcome of every field.
func (t *RecordTranslator) TranslateDetailed(ctx context.Context, rec *Record, to string) (*RecordResult, error) {
	if rec == nil {
		err := &RecordTranslationError{Message: "nil record"}
		t.logger.Printf("artran: unexpected error translating record to %s: %v", to, err)
		return &RecordResult{Record: &Record{Language: to}}, err
	}

	fields := make([]FieldResult, 0, 3+len(rec.Keywords))
	fields = append(fields,
		FieldResult{Field: FieldTitle, Index: -1, Source: rec.Title},
		FieldResult{Field: FieldText, Index: -1, Source: rec.Text},
		FieldResult{Field: FieldDescription, Index: -1, Source: rec.Description},
	)
	for i, kw := range rec.Keywords {
		fields = append(fields, FieldResult{Field: FieldKeywords, Index: i, Source: kw})
	}

	var g errgroup.Group
	g.SetLimit(t.concurrency)
	for i := range fields {
		f := &fields[i]
		g.Go(func() error {
			t.translateField(ctx, f, rec.Language, to)
			return nil
		})
	}
	_ = g.Wait()

	var out TextFields
	if rec.Keywords != nil {
		out.Keywords = make([]string, len(rec.Keywords))
	}
	for _, f := range fields {
		switch f.Field {
		case FieldTitle:
			out.Title = f.Text
		case FieldText:
			out.Text = f.Text
		case FieldDescription:
			out.Description = f.Text
		case FieldKeywords:
			out.Keywords[f.Index] = f.Text
		}
	}

	return &RecordResult{
		Record: rec.WithTranslation(to, out),
		Fields: fields,
	}, nil
}

// translateField fills f.Text, or f.Err and an operator log line.
func (t *RecordTranslator) translateField(ctx context.Context, f *FieldResult, from, to string) {
	if !utf8.ValidString(f.Source) {
		f.Err = &FieldTranslationError{
			Field: f.Field,
			Index: f.Index,
			Cause: &TranslationError{Message: "text is not valid UTF-8"},
		}
	} else if text, err := t.cache.Get(ctx, TranslationKey{Text: f.Source, From: from, To: to}); err != nil {
		f.Err = &FieldTranslationError{Field: f.Field, Index: f.Index, Cause: err}
	} else {
		f.Text = text
		return
	}

	t.logger.Printf("artran: error translating text %q, from: %s, to: %s: %v", summarize(f.Source), from, to, f.Err)
}

// Cache returns the underlying translation cache.
func (t *RecordTranslator) Cache() *TranslationCache {
	return t.cache
}

// summarize shortens text for log output.
func summarize(text string) string {
	text = strings.ToValidUTF8(text, "?")
	if utf8.RuneCountInString(text) <= summaryRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:summaryRunes]) + "..."
}
