package provider

import (
	"context"
	"errors"
	"time"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// Retry configuration for transient provider failures.
const (
	maxRetries        = 3
	initialBackoffMs  = 200
	maxBackoffMs      = 2000
	backoffMultiplier = 2.0
)

// RetryConfig configures exponential backoff retry behavior.
type RetryConfig struct {
	MaxRetries int           // maximum number of attempts
	BaseDelay  time.Duration // initial delay between retries
	MaxDelay   time.Duration // maximum delay between retries
	Multiplier float64       // exponential backoff multiplier
}

// DefaultRetryConfig returns the defaults used for provider calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: maxRetries,
		BaseDelay:  time.Duration(initialBackoffMs) * time.Millisecond,
		MaxDelay:   time.Duration(maxBackoffMs) * time.Millisecond,
		Multiplier: backoffMultiplier,
	}
}

// retryWithBackoff executes fn with exponential backoff. Retry stops early on
// context cancellation and on permanent errors: rejected credentials are never
// worth a second attempt.
func retryWithBackoff[T any](ctx context.Context, config RetryConfig, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T
	backoff := config.BaseDelay

	for attempt := 0; attempt < config.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if errors.Is(err, types.ErrUnauthorized) {
			return zero, err
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if attempt < config.MaxRetries-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * config.Multiplier)
				if backoff > config.MaxDelay {
					backoff = config.MaxDelay
				}
			}
		}
	}

	return zero, lastErr
}
