// Package wait provides the polling loop used for eventual-consistency
// checks, e.g. waiting for a provisioned VM to appear in the console.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultTimeout  = 10 * time.Minute
	DefaultInterval = 2 * time.Second
)

// TimeoutError is returned when the wait budget is exhausted. Err carries
// the last predicate failure, if any, distinguishing "the condition never
// became true" from "checking the condition kept failing".
type TimeoutError struct {
	Message string
	Budget  time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("timed out after %s waiting for %s: last error: %s", e.Budget, e.Message, e.Err)
	}
	return fmt.Sprintf("timed out after %s waiting for %s", e.Budget, e.Message)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

type Options struct {
	// Message names the awaited condition in errors and logs.
	Message string
	// Timeout is the total wait budget; DefaultTimeout if zero.
	Timeout time.Duration
	// Interval is the fixed delay between polls; DefaultInterval if zero.
	Interval time.Duration
	// OnRetry runs between polls, typically refreshing the page so the
	// next poll sees fresh state. A failing OnRetry aborts the wait.
	OnRetry func(ctx context.Context) error
}

var errConditionNotMet = errors.New("condition not met")

// For polls predicate at a fixed interval until it returns true, the
// context is cancelled, or the timeout budget is exhausted. Predicate
// errors are retried within the budget; there is no external cancellation
// beyond the context.
func For(ctx context.Context, predicate func(ctx context.Context) (bool, error), opts Options) error {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	var lastErr error
	operation := func() error {
		ok, err := predicate(ctx)
		if err != nil {
			lastErr = err
		} else if ok {
			return nil
		} else {
			lastErr = nil
		}
		if opts.OnRetry != nil {
			if err := opts.OnRetry(ctx); err != nil {
				return backoff.Permanent(fmt.Errorf("retry action failed: %w", err))
			}
		}
		if lastErr != nil {
			return lastErr
		}
		return errConditionNotMet
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.NewConstantBackOff(opts.Interval), ctx))
	if err == nil {
		return nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	if ctx.Err() != nil {
		return &TimeoutError{Message: opts.Message, Budget: opts.Timeout, Err: lastErr}
	}
	return err
}
