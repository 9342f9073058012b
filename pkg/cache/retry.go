package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend failures caused by the network, such as timeouts
// or refused connections. Redis errors of this kind are retried.
var ErrNetwork = errors.New("network error")

// retryAttempts is the total number of calls RetryWithBackoff makes.
const retryAttempts = 3

// backoffBase is the delay before the first retry; it doubles per attempt.
var backoffBase = 100 * time.Millisecond

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err so that RetryWithBackoff retries it. nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, fails permanently, or
// retryAttempts calls have been made. Waits between calls start at
// backoffBase and double. A canceled ctx ends the wait with ctx.Err().
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt, delay := 1, backoffBase; ; attempt, delay = attempt+1, delay*2 {
		err = fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}
