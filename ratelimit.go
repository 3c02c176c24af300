package aztrans

import (
	"context"
	"sync"
	"time"
)

// Throttle gates outbound requests.
type Throttle interface {
	// Wait blocks until the next request may go out or ctx is done.
	Wait(ctx context.Context) error
}

// IntervalThrottle lets one request through per interval.
// The first Wait passes immediately; later calls block until the interval
// has elapsed since the previous pass.
type IntervalThrottle struct {
	interval time.Duration
	clock    Clock
	last     time.Time
	mu       sync.Mutex
}

// NewIntervalThrottle creates a fixed-interval gate. A nil clock means SystemClock.
func NewIntervalThrottle(interval time.Duration, clock Clock) *IntervalThrottle {
	if clock == nil {
		clock = SystemClock
	}
	return &IntervalThrottle{
		interval: interval,
		clock:    clock,
	}
}

// Wait implements Throttle.
func (t *IntervalThrottle) Wait(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		if wait := t.interval - t.clock.Now().Sub(t.last); wait > 0 {
			if err := t.clock.Sleep(ctx, wait); err != nil {
				return err
			}
		}
	}

	t.last = t.clock.Now()
	return nil
}

// Interval returns the configured gap between requests.
func (t *IntervalThrottle) Interval() time.Duration {
	return t.interval
}

// RateLimiter controls the rate of API requests using a token bucket algorithm.
type RateLimiter struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	clock      Clock
	mu         sync.Mutex
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int   // Maximum requests per minute
	BurstSize         int   // Maximum burst size (default: same as RPM)
	Clock             Clock // Time source (default: SystemClock)
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 60 // Default: 60 RPM
	}

	burst := float64(cfg.BurstSize)
	if burst <= 0 {
		burst = rpm // Default burst = RPM
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock
	}

	return &RateLimiter{
		tokens:     burst, // Start with full bucket
		maxTokens:  burst,
		refillRate: rpm / 60.0,
		lastRefill: clock.Now(),
		clock:      clock,
	}
}

// Wait blocks until a token is available or context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.TryAcquire() {
			return nil
		}

		// Time until the next whole token
		r.mu.Lock()
		waitTime := time.Duration((1 - r.tokens) / r.refillRate * float64(time.Second))
		r.mu.Unlock()

		if err := r.clock.Sleep(ctx, waitTime); err != nil {
			return err
		}
	}
}

// TryAcquire attempts to acquire a token without blocking.
// Returns true if a token was acquired, false otherwise.
func (r *RateLimiter) TryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()

	if r.tokens >= 1 {
		r.tokens--
		return true
	}

	return false
}

// refill adds tokens based on elapsed time (must be called with lock held).
func (r *RateLimiter) refill() {
	now := r.clock.Now()
	elapsed := now.Sub(r.lastRefill).Seconds()
	r.lastRefill = now

	r.tokens += elapsed * r.refillRate
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
}

// Available returns the current number of available tokens.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill()
	return r.tokens
}

// RateLimitedProvider wraps an AIProvider with a throttle.
type RateLimitedProvider struct {
	provider AIProvider
	throttle Throttle
}

// NewRateLimitedProvider creates a provider that waits on throttle before every call.
func NewRateLimitedProvider(provider AIProvider, throttle Throttle) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		throttle: throttle,
	}
}

// Translate implements AIProvider with rate limiting.
func (p *RateLimitedProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if err := p.throttle.Wait(ctx); err != nil {
		return "", &ProviderError{
			Message: "rate limit wait cancelled",
			Cause:   err,
		}
	}

	return p.provider.Translate(ctx, req)
}

var (
	_ Throttle = (*IntervalThrottle)(nil)
	_ Throttle = (*RateLimiter)(nil)
)
