package processor

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/ZaguanLabs/aztrans"
	"github.com/go-resty/resty/v2"
)

// PageExtractor fetches a web page and returns its paragraphs.
type PageExtractor struct {
	client *resty.Client
	html   *HTMLProcessor
	logger *slog.Logger
}

// PageExtractorOption is a functional option for configuring the PageExtractor.
type PageExtractorOption func(*PageExtractor)

// WithHTMLProcessor replaces the default <p> extractor.
func WithHTMLProcessor(p *HTMLProcessor) PageExtractorOption {
	return func(e *PageExtractor) {
		e.html = p
	}
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) PageExtractorOption {
	return func(e *PageExtractor) {
		e.logger = logger
	}
}

// NewPageExtractor creates an extractor on top of client (nil = a fresh resty client).
func NewPageExtractor(client *resty.Client, opts ...PageExtractorOption) *PageExtractor {
	if client == nil {
		client = resty.New()
	}

	e := &PageExtractor{
		client: client,
		html:   NewHTMLProcessor(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ExtractParagraphs issues one GET for url and returns the text of every
// paragraph in document order.
//
// On any failure it logs, and returns an empty slice together with the error,
// so callers that only range over the result simply see no paragraphs.
func (e *PageExtractor) ExtractParagraphs(ctx context.Context, url string) ([]string, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", aztrans.UserAgent()).
		Get(url)
	if err != nil {
		return e.fail(&aztrans.ExtractError{URL: url, Cause: err})
	}

	if !resp.IsSuccess() {
		return e.fail(&aztrans.ExtractError{URL: url, StatusCode: resp.StatusCode()})
	}

	paragraphs, err := e.html.Paragraphs(bytes.NewReader(resp.Body()))
	if err != nil {
		return e.fail(&aztrans.ExtractError{URL: url, StatusCode: resp.StatusCode(), Cause: err})
	}

	e.logger.Debug("extracted paragraphs", "url", url, "count", len(paragraphs))
	return paragraphs, nil
}

func (e *PageExtractor) fail(err *aztrans.ExtractError) ([]string, error) {
	var procErr *aztrans.ProcessorError
	if errors.As(err, &procErr) {
		e.logger.Error("error parsing the page", "url", err.URL, "error", err)
	} else {
		e.logger.Error("error accessing the URL", "url", err.URL, "error", err)
	}
	return []string{}, err
}
