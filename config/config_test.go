package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var allEnv = []string{
	EnvAPIKey, EnvEndpoint, EnvTargetLang, EnvDeployment, EnvAPIVersion,
	EnvMaxTokens, EnvMaxAttempts, EnvRetryDelay, EnvRetryExp, EnvRetryMaxDelay,
	EnvRequestsPerMin, EnvParagraphDelay,
	EnvHTTPTimeout, EnvRedisURL, EnvCacheTTL, EnvBreakerFailures, EnvLogLevel,
}

// clearEnv blanks every variable Load reads; empty values are ignored.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range allEnv {
		t.Setenv(name, "")
	}
}

func noEnvFile(t *testing.T) Option {
	return WithEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvEndpoint, "https://example.openai.azure.com/")

	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Endpoint != "https://example.openai.azure.com/" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.DefaultTargetLang != "pt-br" {
		t.Errorf("DefaultTargetLang = %q, want pt-br", cfg.DefaultTargetLang)
	}
	if cfg.Deployment != "gpt-4o-mini" {
		t.Errorf("Deployment = %q", cfg.Deployment)
	}
	if cfg.APIVersion != "2024-08-01-preview" {
		t.Errorf("APIVersion = %q", cfg.APIVersion)
	}
	if cfg.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", cfg.MaxTokens)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.RetryDelay != 10*time.Second {
		t.Errorf("RetryDelay = %v, want 10s", cfg.RetryDelay)
	}
	if cfg.ParagraphDelay != 2*time.Second {
		t.Errorf("ParagraphDelay = %v, want 2s", cfg.ParagraphDelay)
	}
	if cfg.RetryExponential || cfg.RetryMaxDelay != 0 {
		t.Errorf("backoff should default to fixed: %+v", cfg)
	}
	if cfg.HTTPTimeout != 0 || cfg.CacheTTL != 0 || cfg.BreakerFailures != 0 || cfg.RequestsPerMin != 0 {
		t.Errorf("optional knobs should default to off: %+v", cfg)
	}
	if cfg.CacheEnabled() {
		t.Error("cache should be disabled by default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_Missing(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		ep      string
		missing []string
	}{
		{"both", "", "", []string{EnvAPIKey, EnvEndpoint}},
		{"key", "", "https://x", []string{EnvAPIKey}},
		{"endpoint", "k", "", []string{EnvEndpoint}},
		{"whitespace key", "   ", "https://x", []string{EnvAPIKey}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvAPIKey, tt.key)
			t.Setenv(EnvEndpoint, tt.ep)

			cfg, err := Load(noEnvFile(t))
			if cfg != nil {
				t.Error("expected nil config")
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T: %v", err, err)
			}
			if strings.Join(cfgErr.Missing, ",") != strings.Join(tt.missing, ",") {
				t.Errorf("Missing = %v, want %v", cfgErr.Missing, tt.missing)
			}
			if !strings.Contains(err.Error(), "not set in the environment variables") {
				t.Errorf("unexpected message: %v", err)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvEndpoint, "https://x")
	t.Setenv(EnvTargetLang, "es")
	t.Setenv(EnvDeployment, "gpt-4o")
	t.Setenv(EnvMaxTokens, "250")
	t.Setenv(EnvMaxAttempts, "5")
	t.Setenv(EnvRetryDelay, "1500ms")
	t.Setenv(EnvParagraphDelay, "0s")
	t.Setenv(EnvHTTPTimeout, "30s")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/1")
	t.Setenv(EnvCacheTTL, "24h")
	t.Setenv(EnvBreakerFailures, "4")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvRetryExp, "true")
	t.Setenv(EnvRetryMaxDelay, "1m")
	t.Setenv(EnvRequestsPerMin, "120")

	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DefaultTargetLang != "es" || cfg.Deployment != "gpt-4o" {
		t.Errorf("lang/deployment = %q/%q", cfg.DefaultTargetLang, cfg.Deployment)
	}
	if cfg.MaxTokens != 250 || cfg.MaxAttempts != 5 {
		t.Errorf("MaxTokens/MaxAttempts = %d/%d", cfg.MaxTokens, cfg.MaxAttempts)
	}
	if cfg.RetryDelay != 1500*time.Millisecond {
		t.Errorf("RetryDelay = %v", cfg.RetryDelay)
	}
	if cfg.ParagraphDelay != 0 {
		t.Errorf("ParagraphDelay = %v", cfg.ParagraphDelay)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.RedisURL != "redis://localhost:6379/1" || !cfg.CacheEnabled() {
		t.Errorf("cache settings = %q %v", cfg.RedisURL, cfg.CacheTTL)
	}
	if cfg.BreakerFailures != 4 {
		t.Errorf("BreakerFailures = %d", cfg.BreakerFailures)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if !cfg.RetryExponential || cfg.RetryMaxDelay != time.Minute {
		t.Errorf("exponential backoff = %v, max %v", cfg.RetryExponential, cfg.RetryMaxDelay)
	}
	if cfg.RequestsPerMin != 120 {
		t.Errorf("RequestsPerMin = %d", cfg.RequestsPerMin)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "AZURE_OPENAI_API_KEY=from-file\n" +
		"AZURE_OPENAI_ENDPOINT=https://file.example\n" +
		"DEFAULT_TARGET_LANGUAGE=fr\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// process environment wins over the file
	t.Setenv(EnvTargetLang, "de")

	cfg, err := Load(WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "from-file" {
		t.Errorf("APIKey = %q, want from-file", cfg.APIKey)
	}
	if cfg.Endpoint != "https://file.example" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.DefaultTargetLang != "de" {
		t.Errorf("DefaultTargetLang = %q, want de", cfg.DefaultTargetLang)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, env, value string
	}{
		{"zero tokens", EnvMaxTokens, "0"},
		{"zero attempts", EnvMaxAttempts, "0"},
		{"negative delay", EnvRetryDelay, "-1s"},
		{"negative breaker", EnvBreakerFailures, "-2"},
		{"negative rate", EnvRequestsPerMin, "-1"},
		{"bare retry delay", EnvRetryDelay, "10"},
		{"bare paragraph delay", EnvParagraphDelay, "2.5"},
		{"bare cache ttl", EnvCacheTTL, "3600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvAPIKey, "k")
			t.Setenv(EnvEndpoint, "https://x")
			t.Setenv(tt.env, tt.value)

			_, err := Load(noEnvFile(t))
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if len(cfgErr.Missing) != 0 {
				t.Errorf("Missing should be empty, got %v", cfgErr.Missing)
			}
		})
	}
}

func TestLoad_DurationUnits(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvEndpoint, "https://x")
	t.Setenv(EnvRetryDelay, "10")

	_, err := Load(noEnvFile(t))
	if err == nil || !strings.Contains(err.Error(), "needs a unit suffix") {
		t.Fatalf("expected unit error, got %v", err)
	}

	t.Setenv(EnvRetryDelay, "0")
	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("bare zero should be accepted: %v", err)
	}
	if cfg.RetryDelay != 0 {
		t.Errorf("RetryDelay = %v, want 0", cfg.RetryDelay)
	}
}
