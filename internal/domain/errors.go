package domain

import (
	"context"
	"errors"
	"net"
)

// Sentinel errors classifying failures of engagement actions and upstream
// calls. Handlers map these onto HTTP status codes; services wrap them with
// fmt.Errorf("...: %w", err) so errors.Is keeps working through the stack.
var (
	// ErrAuthenticationRequired means a mutating action was attempted
	// without an acting user. Callers should redirect to login, not retry.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrNotFound means the resource is absent upstream. Some profile
	// reads treat this as a legitimate "no resource yet" rather than a
	// failure.
	ErrNotFound = errors.New("not found")

	// ErrTimeout means the upstream call timed out. Retryable for
	// idempotent reads only; a timed-out mutation surfaces as-is.
	ErrTimeout = errors.New("upstream timeout")

	// ErrValidationRejected means the server rejected the request for
	// violating an invariant it arbitrates (accepting an already-solved
	// question, voting without permission).
	ErrValidationRejected = errors.New("rejected by server")
)

// IsTimeout reports whether err is classified as a timeout. Besides the
// sentinel it recognizes context deadline expiry and net.Error timeouts so
// transport-level failures classify without re-wrapping.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsNotFound reports whether err is classified as a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
