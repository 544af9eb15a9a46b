package waiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitUntil_ImmediateSuccess(t *testing.T) {
	calls := 0
	err := WaitUntil(context.Background(), func(context.Context) (bool, error) {
		calls++
		return true, nil
	}, "immediate")

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWaitUntil_SucceedsAfterPolls(t *testing.T) {
	calls := 0
	start := time.Now()
	err := WaitUntil(context.Background(), func(context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	}, "third time lucky",
		WithTimeout(2*time.Second),
		WithInterval(10*time.Millisecond),
	)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestWaitUntil_Timeout(t *testing.T) {
	err := WaitUntil(context.Background(), func(context.Context) (bool, error) {
		return false, nil
	}, "waiting for nothing",
		WithTimeout(100*time.Millisecond),
		WithInterval(10*time.Millisecond),
	)

	require.Error(t, err)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "waiting for nothing", timeoutErr.Description)
	assert.Contains(t, err.Error(), "waiting for nothing")
}

func TestWaitUntil_PredicateErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	err := WaitUntil(context.Background(), func(context.Context) (bool, error) {
		return false, boom
	}, "failing predicate")

	require.ErrorIs(t, err, boom)
	var timeoutErr *TimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
}

func TestWaitUntil_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitUntil(ctx, func(context.Context) (bool, error) {
		return false, nil
	}, "canceled",
		WithTimeout(time.Second),
		WithInterval(10*time.Millisecond),
	)

	require.ErrorIs(t, err, context.Canceled)
}
