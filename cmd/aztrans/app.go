package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/ZaguanLabs/aztrans"
	"github.com/ZaguanLabs/aztrans/cache"
	"github.com/ZaguanLabs/aztrans/config"
	"github.com/ZaguanLabs/aztrans/processor"
	"github.com/ZaguanLabs/aztrans/provider"
)

// app holds the components shared by every subcommand.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	translator *aztrans.Translator
	extractor  *processor.PageExtractor
	closers    []io.Closer
}

// newApp wires configuration into a translator and page extractor.
// Both share one HTTP client.
func newApp(cfg *config.Config, logOut io.Writer, levelOverride string) (*app, error) {
	level := cfg.LogLevel
	if levelOverride != "" {
		level = levelOverride
	}
	logger, err := newLogger(logOut, level)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	azure := provider.NewAzureProvider(provider.AzureConfig{
		APIKey:     cfg.APIKey,
		Endpoint:   cfg.Endpoint,
		Deployment: cfg.Deployment,
		APIVersion: cfg.APIVersion,
		MaxTokens:  cfg.MaxTokens,
		HTTPClient: httpClient,
	})
	p := newProviderChain(cfg, logger, azure)

	a := &app{cfg: cfg, logger: logger}

	opts := []aztrans.TranslatorOption{
		aztrans.WithLogger(logger),
		aztrans.WithMaxTokens(cfg.MaxTokens),
		aztrans.WithThrottle(aztrans.NewIntervalThrottle(cfg.ParagraphDelay, aztrans.SystemClock)),
		aztrans.WithDocumentCodec(processor.NewDocxCodec()),
	}

	if cfg.CacheEnabled() {
		c, err := a.newCache()
		if err != nil {
			return nil, err
		}
		opts = append(opts, aztrans.WithCache(c))
	}

	a.translator = aztrans.NewTranslator(cfg.DefaultTargetLang, p, opts...)
	a.extractor = processor.NewPageExtractor(
		resty.NewWithClient(httpClient),
		processor.WithLogger(logger),
	)

	logger.Debug("translator ready",
		"deployment", azure.Deployment(),
		"default_lang", a.translator.DefaultLang(),
		"requests_per_minute", cfg.RequestsPerMin,
	)
	return a, nil
}

// newProviderChain wraps base, innermost first, with the request rate
// limit, the circuit breaker and 429 retries. Every retry attempt passes
// through the rate limit.
func newProviderChain(cfg *config.Config, logger *slog.Logger, base aztrans.AIProvider) aztrans.AIProvider {
	p := base

	if cfg.RequestsPerMin > 0 {
		p = aztrans.NewRateLimitedProvider(p, aztrans.NewRateLimiter(aztrans.RateLimitConfig{
			RequestsPerMinute: cfg.RequestsPerMin,
			BurstSize:         1,
		}))
	}

	if cfg.BreakerFailures > 0 {
		p = aztrans.NewBreakerProvider(p, aztrans.BreakerConfig{
			ConsecutiveFailures: uint32(cfg.BreakerFailures),
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		})
	}

	return aztrans.NewRetryableProvider(p, aztrans.RetryConfig{
		MaxAttempts: cfg.MaxAttempts,
		Delay:       cfg.RetryDelay,
		Exponential: cfg.RetryExponential,
		MaxDelay:    cfg.RetryMaxDelay,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			logger.Warn("Error 429: Too many requests. Retrying...", "attempt", attempt, "delay", delay)
		},
	})
}

func (a *app) newCache() (aztrans.TranslationCache, error) {
	if a.cfg.RedisURL == "" {
		return cache.NewInMemoryCache(a.cfg.CacheTTL), nil
	}

	rc, err := cache.NewRedisCache(cache.RedisConfig{
		URL: a.cfg.RedisURL,
		TTL: a.cfg.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	a.closers = append(a.closers, rc)
	return rc, nil
}

// Close releases connections opened by newApp.
func (a *app) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// newLogger builds a text logger; level is one of debug, info, warn, error.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
