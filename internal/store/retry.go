package store

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// retryPolicy retries an operation that lost a race with exponential
// backoff and jitter.
type retryPolicy struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// applyRetry is used by SkillStats Apply. Races are short-lived, so waits
// stay in the low milliseconds.
var applyRetry = retryPolicy{
	MaxAttempts: 5,
	InitialWait: 2 * time.Millisecond,
	MaxWait:     50 * time.Millisecond,
	Multiplier:  2,
}

// do runs fn until it succeeds, returns an error retryable rejects, or
// the attempts run out. It returns the last error.
func (p retryPolicy) do(ctx context.Context, retryable func(error) bool, fn func() error) error {
	var lastErr error
	for attempt := range p.MaxAttempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}

		// Last attempt, don't sleep.
		if attempt == p.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff(attempt)):
		}
	}
	return lastErr
}

// backoff computes the wait duration for the given attempt.
func (p retryPolicy) backoff(attempt int) time.Duration {
	wait := float64(p.InitialWait) * math.Pow(p.Multiplier, float64(attempt))
	if wait > float64(p.MaxWait) {
		wait = float64(p.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
