package wait

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForConditionEventuallyMet(t *testing.T) {
	polls := 0
	err := For(context.Background(), func(ctx context.Context) (bool, error) {
		polls++
		return polls >= 3, nil
	}, Options{Timeout: time.Second, Interval: time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, 3, polls)
}

func TestForTimeout(t *testing.T) {
	err := For(context.Background(), func(ctx context.Context) (bool, error) {
		return false, nil
	}, Options{Message: "vm to exist", Timeout: 20 * time.Millisecond, Interval: time.Millisecond})

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "vm to exist", timeout.Message)
	// the condition simply never became true
	assert.NoError(t, timeout.Err)
}

func TestForTimeoutCarriesLastError(t *testing.T) {
	boom := errors.New("connection refused")
	err := For(context.Background(), func(ctx context.Context) (bool, error) {
		return false, boom
	}, Options{Timeout: 20 * time.Millisecond, Interval: time.Millisecond})

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.ErrorIs(t, timeout.Err, boom)
}

func TestForRunsRetryActionBetweenPolls(t *testing.T) {
	polls, refreshes := 0, 0
	err := For(context.Background(), func(ctx context.Context) (bool, error) {
		polls++
		return polls >= 2, nil
	}, Options{
		Timeout:  time.Second,
		Interval: time.Millisecond,
		OnRetry: func(ctx context.Context) error {
			refreshes++
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, refreshes)
}

func TestForRetryActionFailureIsFatal(t *testing.T) {
	boom := errors.New("refresh failed")
	err := For(context.Background(), func(ctx context.Context) (bool, error) {
		return false, nil
	}, Options{
		Timeout:  time.Second,
		Interval: time.Millisecond,
		OnRetry:  func(ctx context.Context) error { return boom },
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var timeout *TimeoutError
	assert.False(t, errors.As(err, &timeout))
}
