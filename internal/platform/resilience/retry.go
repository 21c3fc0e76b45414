package resilience

import (
	"context"
	"time"
)

// RetryPolicy retries an operation with linear backoff: attempt n waits
// n*Step before running again.
type RetryPolicy struct {
	MaxRetries int
	Step       time.Duration
}

// Do runs fn until it succeeds, returns a non-retryable error, or the retry
// budget is spent. The last error is returned. fn receives the zero-based
// attempt number.
func (p RetryPolicy) Do(ctx context.Context, retryable func(error) bool, fn func(attempt int) error) error {
	maxRetries := p.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * p.Step
		if backoff <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
