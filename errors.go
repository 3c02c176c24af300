package aztrans

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoDocumentCodec is returned by TranslateDocument when no codec was registered.
var ErrNoDocumentCodec = errors.New("no document codec registered")

// ProviderError indicates a chat-completion failure (HTTP error, rate limit, bad payload).
type ProviderError struct {
	Message    string
	Cause      error
	StatusCode int  // HTTP status, 0 when no response was received
	Retryable  bool // Whether the operation can be retried
	Malformed  bool // A response arrived but held no usable translation
}

func (e *ProviderError) Error() string {
	msg := "provider error: " + e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// RetryError is returned when every attempt failed with a retryable error.
type RetryError struct {
	Attempts int
	Last     error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("failed to translate after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetryError) Unwrap() error {
	return e.Last
}

// ExtractError indicates a page could not be fetched.
type ExtractError struct {
	URL        string
	StatusCode int // HTTP status, 0 for transport errors
	Cause      error
}

func (e *ExtractError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("error accessing the URL %s: %v", e.URL, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("error accessing the URL %s: status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		return fmt.Sprintf("error accessing the URL %s", e.URL)
	}
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string // The type of content that failed to process
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// DocumentError indicates a document could not be opened or saved.
type DocumentError struct {
	Op    string // "open" or "save"
	Path  string
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// IsRateLimited reports whether err carries an HTTP 429 from the provider.
func IsRateLimited(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
