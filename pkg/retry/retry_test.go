package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-service/internal/domain"
)

func TestDo_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), 3, domain.IsTimeout, func(_ context.Context) (string, error) {
		calls++
		return "payload", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "payload", result)
	assert.Equal(t, 1, calls, "success should not be retried")
}

// A read that times out twice then succeeds on the third attempt must
// reach the caller with exactly three invocations.
func TestDo_TimeoutThenSuccess(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), 3, domain.IsTimeout, func(_ context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", domain.ErrTimeout
		}
		return "payload", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "payload", result)
	assert.Equal(t, 3, calls)
}

func TestDo_NonRetryableFailsImmediately(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := Do(context.Background(), 5, domain.IsTimeout, func(_ context.Context) (int, error) {
		calls++
		return 0, boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "non-timeout failure must not be retried")
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), 3, domain.IsTimeout, func(_ context.Context) (int, error) {
		calls++
		return 0, domain.ErrTimeout
	})

	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, 3, calls, "op invoked at most attempts times")
}

func TestDo_InvalidAttempts(t *testing.T) {
	_, err := Do(context.Background(), 0, domain.IsTimeout, func(_ context.Context) (int, error) {
		t.Fatal("op must not be invoked")
		return 0, nil
	})

	require.ErrorIs(t, err, ErrNoAttempts)
}

func TestDo_ContextCancelledBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Do(ctx, 5, domain.IsTimeout, func(_ context.Context) (int, error) {
		calls++
		cancel()
		return 0, domain.ErrTimeout
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "cancellation stops the retry loop")
}
