package client

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

// retryPolicy bounds the retries of one logical call.
type retryPolicy struct {
	base       time.Duration
	maxRetries int
}

// delay returns base*2^n, the wait before retry n (0-based).
func (p retryPolicy) delay(n int) time.Duration {
	b := backoff.Backoff{
		Min:    p.base,
		Max:    p.base << uint(p.maxRetries),
		Factor: 2,
	}
	return b.ForAttempt(float64(n))
}

// retryState tracks one call across its attempts. It is a value: each
// transition returns a new state, so calls never share retry bookkeeping.
type retryState struct {
	retries int
}

func (s retryState) canRetry(p retryPolicy) bool {
	return s.retries < p.maxRetries
}

func (s retryState) next() retryState {
	return retryState{retries: s.retries + 1}
}

// sleep waits for d without blocking past ctx.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
