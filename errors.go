package artran

import (
	"errors"
	"fmt"
)

// TranslationError is the base error type for translation failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation provider failure (network, quota, bad language pair, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a shared store operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// FieldTranslationError indicates that a single text field of a record could
// not be translated. It never escapes RecordTranslator.Translate; the field is
// left empty and the error is reported to the operator.
type FieldTranslationError struct {
	Field string // "title", "text", "description" or "keywords"
	Index int    // Keyword position, -1 for scalar fields
	Cause error
}

func (e *FieldTranslationError) Error() string {
	name := e.Field
	if e.Index >= 0 {
		name = fmt.Sprintf("%s[%d]", e.Field, e.Index)
	}
	if e.Cause != nil {
		return fmt.Sprintf("field %s: %v", name, e.Cause)
	}
	return fmt.Sprintf("field %s: translation failed", name)
}

func (e *FieldTranslationError) Unwrap() error {
	return e.Cause
}

// RecordTranslationError indicates that no meaningful output record could be built.
type RecordTranslationError struct {
	Message string
	Cause   error
}

func (e *RecordTranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("record error: %s", e.Message)
}

func (e *RecordTranslationError) Unwrap() error {
	return e.Cause
}

// asProviderError returns err as a *ProviderError, wrapping it if needed.
func asProviderError(err error) *ProviderError {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr
	}
	return &ProviderError{
		Message: "translate call failed",
		Cause:   err,
	}
}
