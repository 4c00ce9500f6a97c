// Package retry provides a bounded, condition-gated retry for idempotent
// read operations.
package retry

import (
	"context"
	"errors"
)

// ErrNoAttempts is returned when Do is called with attempts < 1.
var ErrNoAttempts = errors.New("retry: attempts must be at least 1")

// Operation is a fallible read eligible for retry. It must be idempotent:
// Do may invoke it several times.
type Operation[T any] func(ctx context.Context) (T, error)

// Do invokes op up to attempts times, retrying only when retryable
// classifies the failure as transient. Any other failure propagates
// immediately without further attempts. No backoff is introduced between
// attempts; this is appropriate only for idempotent GET-style reads and
// must never wrap a mutating call, which could double-apply.
//
// When every attempt fails the last error is returned. Context
// cancellation between attempts stops the loop.
func Do[T any](ctx context.Context, attempts int, retryable func(error) bool, op Operation[T]) (T, error) {
	var zero T
	if attempts < 1 {
		return zero, ErrNoAttempts
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, lastErr
			}
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) {
			break
		}
	}

	return zero, lastErr
}
