// File: internal/publish/retry.go
package publish

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// ErrBudgetExhausted reports that a polling loop ran out of attempts without
// a definitive signal. Callers decide whether that degrades or fails.
var ErrBudgetExhausted = errors.New("retry budget exhausted")

// RetryPolicy bounds a polling loop: at most MaxAttempts probes, paced at
// Interval, each optionally bounded by PerAttemptTimeout. Probe errors are
// transient (keep polling) unless IsTransient classifies them fatal.
type RetryPolicy struct {
	MaxAttempts       int
	Interval          time.Duration
	PerAttemptTimeout time.Duration
	// IsTransient classifies probe errors. Nil treats every error as
	// transient.
	IsTransient func(error) bool
}

// Poll runs probe until it reports done, a fatal error occurs, the context
// is cancelled, or the attempt budget is exhausted. A rate limiter paces the
// attempts so a fast-failing probe cannot hammer the page.
func (p RetryPolicy) Poll(ctx context.Context, probe func(context.Context) (bool, error)) error {
	limiter := rate.NewLimiter(rate.Every(p.Interval), 1)

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.PerAttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.PerAttemptTimeout)
		}
		done, err := probe(attemptCtx)
		cancel()

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if p.IsTransient != nil && !p.IsTransient(err) {
				return err
			}
			continue
		}
		if done {
			return nil
		}
	}
	return ErrBudgetExhausted
}
