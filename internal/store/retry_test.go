package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTransient = errors.New("transient")

func fastPolicy(attempts int) retryPolicy {
	return retryPolicy{
		MaxAttempts: attempts,
		InitialWait: time.Microsecond,
		MaxWait:     10 * time.Microsecond,
		Multiplier:  2,
	}
}

func always(error) bool { return true }

func TestRetry_SucceedsAfterTransient(t *testing.T) {
	calls := 0
	err := fastPolicy(3).do(context.Background(), always, func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := fastPolicy(4).do(context.Background(), always, func() error {
		calls++
		return errTransient
	})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 4, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := fastPolicy(5).do(context.Background(), func(err error) bool {
		return errors.Is(err, errTransient)
	}, func() error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := retryPolicy{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1}
	err := p.do(ctx, always, func() error { return errTransient })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_BackoffBounds(t *testing.T) {
	p := retryPolicy{MaxAttempts: 10, InitialWait: 10 * time.Millisecond, MaxWait: 40 * time.Millisecond, Multiplier: 2}

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{0, 10 * time.Millisecond},
		{1, 20 * time.Millisecond},
		{2, 40 * time.Millisecond},
		{5, 40 * time.Millisecond}, // capped
	}
	for _, tt := range tests {
		for i := 0; i < 20; i++ {
			got := p.backoff(tt.attempt)
			assert.GreaterOrEqual(t, got, tt.base*8/10)
			assert.LessOrEqual(t, got, tt.base*12/10)
		}
	}
}
