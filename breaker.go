package aztrans

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig configures the circuit breaker around a provider.
type BreakerConfig struct {
	Name                string        // Breaker name used in state-change callbacks
	ConsecutiveFailures uint32        // Failures in a row that open the breaker (default: 5)
	OpenTimeout         time.Duration // Time spent open before a trial request (default: 60s)

	// OnStateChange is called whenever the breaker changes state.
	OnStateChange func(name string, from, to gobreaker.State)
}

// BreakerProvider fails fast once the endpoint keeps failing.
// Rate-limit responses are left to the retry layer and never trip it.
type BreakerProvider struct {
	provider AIProvider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps provider with a circuit breaker.
func NewBreakerProvider(provider AIProvider, cfg BreakerConfig) *BreakerProvider {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	name := cfg.Name
	if name == "" {
		name = "azure-openai"
	}

	return &BreakerProvider{
		provider: provider,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: cfg.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: func(err error) bool {
				return err == nil || IsRateLimited(err)
			},
			OnStateChange: cfg.OnStateChange,
		}),
	}
}

// Translate implements AIProvider.
func (p *BreakerProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.provider.Translate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", &ProviderError{
			Message: "circuit breaker open",
			Cause:   err,
		}
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// State returns the current breaker state.
func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
