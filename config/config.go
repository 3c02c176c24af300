// Package config loads aztrans settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ZaguanLabs/aztrans"
)

// Environment variable names.
const (
	EnvAPIKey          = "AZURE_OPENAI_API_KEY"
	EnvEndpoint        = "AZURE_OPENAI_ENDPOINT"
	EnvTargetLang      = "DEFAULT_TARGET_LANGUAGE"
	EnvDeployment      = "AZURE_OPENAI_DEPLOYMENT"
	EnvAPIVersion      = "AZURE_OPENAI_API_VERSION"
	EnvMaxTokens       = "AZTRANS_MAX_TOKENS"
	EnvMaxAttempts     = "AZTRANS_MAX_ATTEMPTS"
	EnvRetryDelay      = "AZTRANS_RETRY_DELAY"
	EnvRetryExp        = "AZTRANS_RETRY_EXPONENTIAL"
	EnvRetryMaxDelay   = "AZTRANS_RETRY_MAX_DELAY"
	EnvRequestsPerMin  = "AZTRANS_REQUESTS_PER_MINUTE"
	EnvParagraphDelay  = "AZTRANS_PARAGRAPH_DELAY"
	EnvHTTPTimeout     = "AZTRANS_HTTP_TIMEOUT"
	EnvRedisURL        = "AZTRANS_REDIS_URL"
	EnvCacheTTL        = "AZTRANS_CACHE_TTL"
	EnvBreakerFailures = "AZTRANS_BREAKER_FAILURES"
	EnvLogLevel        = "AZTRANS_LOG_LEVEL"
)

// DefaultEnvFile is read when no other file is given.
const DefaultEnvFile = ".env"

// Config is the process-wide configuration. It is not modified after Load.
type Config struct {
	APIKey            string
	Endpoint          string
	DefaultTargetLang string

	Deployment string
	APIVersion string
	MaxTokens  int

	MaxAttempts      int
	RetryDelay       time.Duration
	RetryExponential bool          // double RetryDelay after each attempt
	RetryMaxDelay    time.Duration // cap for exponential delays (0 = no cap)
	ParagraphDelay   time.Duration
	HTTPTimeout      time.Duration // 0 = no timeout
	RequestsPerMin   int           // 0 = no request rate limit

	RedisURL        string        // empty = in-memory cache
	CacheTTL        time.Duration // 0 = caching off
	BreakerFailures int           // 0 = breaker off

	LogLevel string
}

// CacheEnabled reports whether translations should be cached.
func (c *Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// ConfigError is returned when required settings are missing or invalid.
type ConfigError struct {
	Missing []string // required variables that were unset or empty
	Cause   error
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return "API key or endpoint is not set in the environment variables: " + strings.Join(e.Missing, ", ")
	}
	return fmt.Sprintf("invalid configuration: %v", e.Cause)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

type options struct {
	envFile string
}

// Option customises Load.
type Option func(*options)

// WithEnvFile reads settings from path instead of ./.env.
// An empty path disables the file.
func WithEnvFile(path string) Option {
	return func(o *options) {
		o.envFile = path
	}
}

// Load reads the configuration. Process environment variables take
// precedence over the env file; a missing env file is not an error.
func Load(opts ...Option) (*Config, error) {
	o := options{envFile: DefaultEnvFile}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if o.envFile != "" {
		if _, err := os.Stat(o.envFile); err == nil {
			v.SetConfigFile(o.envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, &ConfigError{Cause: fmt.Errorf("reading %s: %w", o.envFile, err)}
			}
		}
	}

	if err := checkUnits(v); err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:            strings.TrimSpace(v.GetString(key(EnvAPIKey))),
		Endpoint:          strings.TrimSpace(v.GetString(key(EnvEndpoint))),
		DefaultTargetLang: strings.TrimSpace(v.GetString(key(EnvTargetLang))),
		Deployment:        v.GetString(key(EnvDeployment)),
		APIVersion:        v.GetString(key(EnvAPIVersion)),
		MaxTokens:         v.GetInt(key(EnvMaxTokens)),
		MaxAttempts:       v.GetInt(key(EnvMaxAttempts)),
		RetryDelay:        v.GetDuration(key(EnvRetryDelay)),
		RetryExponential:  v.GetBool(key(EnvRetryExp)),
		RetryMaxDelay:     v.GetDuration(key(EnvRetryMaxDelay)),
		ParagraphDelay:    v.GetDuration(key(EnvParagraphDelay)),
		HTTPTimeout:       v.GetDuration(key(EnvHTTPTimeout)),
		RequestsPerMin:    v.GetInt(key(EnvRequestsPerMin)),
		RedisURL:          v.GetString(key(EnvRedisURL)),
		CacheTTL:          v.GetDuration(key(EnvCacheTTL)),
		BreakerFailures:   v.GetInt(key(EnvBreakerFailures)),
		LogLevel:          strings.ToLower(v.GetString(key(EnvLogLevel))),
	}

	if cfg.DefaultTargetLang == "" {
		cfg.DefaultTargetLang = aztrans.DefaultTargetLang
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.Endpoint == "" {
		missing = append(missing, EnvEndpoint)
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	switch {
	case c.MaxTokens <= 0:
		return &ConfigError{Cause: fmt.Errorf("%s must be positive, got %d", EnvMaxTokens, c.MaxTokens)}
	case c.MaxAttempts <= 0:
		return &ConfigError{Cause: fmt.Errorf("%s must be positive, got %d", EnvMaxAttempts, c.MaxAttempts)}
	case c.RetryDelay < 0, c.RetryMaxDelay < 0, c.ParagraphDelay < 0, c.HTTPTimeout < 0, c.CacheTTL < 0:
		return &ConfigError{Cause: fmt.Errorf("durations must not be negative")}
	case c.BreakerFailures < 0:
		return &ConfigError{Cause: fmt.Errorf("%s must not be negative", EnvBreakerFailures)}
	case c.RequestsPerMin < 0:
		return &ConfigError{Cause: fmt.Errorf("%s must not be negative", EnvRequestsPerMin)}
	}
	return nil
}

var durationVars = []string{
	EnvRetryDelay, EnvRetryMaxDelay, EnvParagraphDelay, EnvHTTPTimeout, EnvCacheTTL,
}

// checkUnits rejects durations written as a bare number ("10"), which
// would otherwise be read as nanoseconds. "0" is allowed.
func checkUnits(v *viper.Viper) error {
	for _, env := range durationVars {
		raw := strings.TrimSpace(v.GetString(key(env)))
		if raw == "" || raw == "0" {
			continue
		}
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			return &ConfigError{Cause: fmt.Errorf("%s=%q needs a unit suffix such as \"s\" or \"ms\"", env, raw)}
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(key(EnvTargetLang), aztrans.DefaultTargetLang)
	v.SetDefault(key(EnvDeployment), aztrans.DefaultDeployment)
	v.SetDefault(key(EnvAPIVersion), aztrans.DefaultAPIVersion)
	v.SetDefault(key(EnvMaxTokens), aztrans.DefaultMaxTokens)
	v.SetDefault(key(EnvMaxAttempts), aztrans.DefaultRetryConfig().MaxAttempts)
	v.SetDefault(key(EnvRetryDelay), aztrans.DefaultRetryConfig().Delay.String())
	v.SetDefault(key(EnvRetryExp), false)
	v.SetDefault(key(EnvRetryMaxDelay), "0s")
	v.SetDefault(key(EnvParagraphDelay), aztrans.DefaultParagraphDelay.String())
	v.SetDefault(key(EnvHTTPTimeout), "0s")
	v.SetDefault(key(EnvRequestsPerMin), 0)
	v.SetDefault(key(EnvRedisURL), "")
	v.SetDefault(key(EnvCacheTTL), "0s")
	v.SetDefault(key(EnvBreakerFailures), 0)
	v.SetDefault(key(EnvLogLevel), "info")
}

// key maps an environment variable to viper's lowercase key. AutomaticEnv
// upper-cases it back on lookup, and .env files are loaded lowercased.
func key(env string) string {
	return strings.ToLower(env)
}
