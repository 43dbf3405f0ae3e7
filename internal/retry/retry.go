// Package retry provides a generic retry combinator for fallible provider
// calls. Retryability is decided by a predicate injected at the call site,
// so the combinator itself knows nothing about rate limits.
package retry

import (
	"context"
	"time"
)

// Default budget: three retries starting at one second, doubling each time
// (1000ms, 2000ms, 4000ms).
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 1000 * time.Millisecond
)

// Operation is a fallible call producing a value of type T.
type Operation[T any] func(ctx context.Context) (T, error)

// Predicate reports whether an error is worth retrying.
type Predicate func(error) bool

// SleepFunc waits for the given duration or until the context is done.
// Injectable so tests can observe backoff intervals without waiting.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy holds the retry budget and backoff configuration.
type Policy struct {
	// MaxRetries is the number of re-invocations allowed after the first
	// attempt.
	MaxRetries int

	// BaseDelay is the wait before the first retry; it doubles after every
	// retry.
	BaseDelay time.Duration

	// Sleep is the wait implementation. Nil means a timer-based wait.
	Sleep SleepFunc
}

// DefaultPolicy returns the default retry budget and backoff.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

// Do invokes op, retrying while retryable reports true and budget remains.
// It is a pure decorator: success values pass through untouched, and any
// non-retryable failure or budget exhaustion re-raises the original error
// unchanged.
func Do[T any](ctx context.Context, policy Policy, retryable Predicate, op Operation[T]) (T, error) {
	var zero T

	sleep := policy.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	remaining := policy.MaxRetries
	delay := policy.BaseDelay
	for {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if remaining <= 0 || !retryable(err) {
			return zero, err
		}
		if serr := sleep(ctx, delay); serr != nil {
			return zero, serr
		}
		remaining--
		delay *= 2
	}
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
