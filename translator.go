package aztrans

import (
	"context"
	"log/slog"
	"strings"
)

// Translator is the main translation engine.
type Translator struct {
	defaultLang string
	provider    AIProvider
	cache       TranslationCache
	codec       DocumentCodec
	throttle    Throttle
	maxTokens   int
	logger      *slog.Logger
}

// AIProvider is the interface for chat-completion translation backends.
type AIProvider interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// DocumentCodec reads the plain text of a document's paragraphs and writes
// a new document with one unformatted paragraph per string.
type DocumentCodec interface {
	ReadParagraphs(path string) ([]string, error)
	WriteParagraphs(path string, paragraphs []string) error
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithDocumentCodec sets the codec used by TranslateDocument.
func WithDocumentCodec(codec DocumentCodec) TranslatorOption {
	return func(t *Translator) {
		t.codec = codec
	}
}

// WithThrottle sets the gate applied between document paragraphs.
func WithThrottle(throttle Throttle) TranslatorOption {
	return func(t *Translator) {
		t.throttle = throttle
	}
}

// WithMaxTokens sets the completion cap sent with each request.
func WithMaxTokens(n int) TranslatorOption {
	return func(t *Translator) {
		t.maxTokens = n
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(logger *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a new Translator with the given default target language and provider.
func NewTranslator(defaultLang string, provider AIProvider, opts ...TranslatorOption) *Translator {
	if defaultLang == "" {
		defaultLang = DefaultTargetLang
	}

	t := &Translator{
		defaultLang: defaultLang,
		provider:    provider,
		maxTokens:   DefaultMaxTokens,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.throttle == nil {
		t.throttle = NewIntervalThrottle(DefaultParagraphDelay, SystemClock)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}

	return t
}

// Translate translates text into targetLang ("" = the default language).
//
// Empty text returns "" and a nil error without calling the provider.
// Every failure is logged and returned; the text is "" in that case.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	translated, _, err := t.translate(ctx, text, t.resolveLang(targetLang))
	return translated, err
}

// translate reports whether the result came from the cache.
func (t *Translator) translate(ctx context.Context, text, lang string) (string, bool, error) {
	if text == "" {
		t.logger.Debug("no text to translate")
		return "", false, nil
	}

	var cacheKey string
	if t.cache != nil {
		cacheKey = CacheKey(HashText(text), lang)
		if cached, ok := t.cache.Get(cacheKey); ok {
			return cached, true, nil
		}
	}

	if t.provider == nil {
		err := &ProviderError{Message: "no provider configured"}
		t.logger.Error("translation failed", "target_lang", lang, "error", err)
		return "", false, err
	}

	translated, err := t.provider.Translate(ctx, TranslateRequest{
		Text:       text,
		TargetLang: lang,
		MaxTokens:  t.maxTokens,
	})
	if err != nil {
		t.logger.Error("translation failed", "target_lang", lang, "error", err)
		return "", false, err
	}

	if t.cache != nil && translated != "" {
		if err := t.cache.Set(cacheKey, translated); err != nil {
			t.logger.Warn("cache write failed", "error", err)
		}
	}

	return translated, false, nil
}

// resolveLang falls back to the default language for an empty code.
func (t *Translator) resolveLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return t.defaultLang
	}
	return lang
}

// DefaultLang returns the default target language.
func (t *Translator) DefaultLang() string {
	return t.defaultLang
}
