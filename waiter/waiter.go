// Package waiter provides a generic poll-until-true primitive with a
// deadline. It is the single suspension mechanism of the scraper: selector
// waits, the post-login redirect wait, and app-state waits all go through
// WaitUntil so timeouts are enforced uniformly.
package waiter

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultInterval = 100 * time.Millisecond
)

// TimeoutError reports that a condition did not become true before its
// deadline. Description identifies which wait timed out.
type TimeoutError struct {
	Description string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out %s", e.Description)
}

type options struct {
	timeout  time.Duration
	interval time.Duration
}

// Option configures a single WaitUntil call.
type Option func(*options)

// WithTimeout overrides the default 10s deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithInterval overrides the default 100ms polling cadence.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WaitUntil polls predicate until it returns true, the deadline elapses, or
// the predicate itself fails.
//
// It returns nil as soon as the predicate yields true, a *TimeoutError
// carrying description when the deadline is reached first, and the
// predicate's own error unchanged if the predicate fails. The deadline
// timer is stopped on every return path.
func WaitUntil(ctx context.Context, predicate func(context.Context) (bool, error), description string, opts ...Option) error {
	o := options{timeout: defaultTimeout, interval: defaultInterval}
	for _, opt := range opts {
		opt(&o)
	}

	deadline := time.NewTimer(o.timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		ok, err := predicate(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return &TimeoutError{Description: description}
		case <-ticker.C:
		}
	}
}
