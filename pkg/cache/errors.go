package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a backend cannot be reached or opened.
var ErrUnavailable = errors.New("cache backend unavailable")

// RetryableError marks a backend failure as transient: a dropped Redis
// connection or a locked SQLite database.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryPolicy bounds the attempts at a transient operation. The delay
// doubles after every failed attempt.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// defaultRetry covers remote connects.
var defaultRetry = RetryPolicy{Attempts: 3, Delay: time.Second}

// RetryWithBackoff runs fn under the default policy: 3 attempts starting
// at one second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return defaultRetry.Do(ctx, fn)
}

// Do calls fn until it succeeds, returns an error not wrapped with
// Retryable, the attempts run out or ctx is done.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	delay := p.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= p.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
