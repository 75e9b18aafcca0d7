// Package poll implements bounded advisory waits against eventually
// consistent external state (pod termination, node readiness, rollouts).
//
// A wait that runs out of time is not an error: the outcome is reported as
// [TimedOut] and the caller decides whether to escalate. Only context
// cancellation aborts a wait with an error.
package poll

import (
	"context"
	"time"
)

// Outcome reports how a wait ended.
type Outcome string

const (
	// Succeeded means the condition was observed before the deadline.
	Succeeded Outcome = "succeeded"
	// TimedOut means the deadline elapsed with the condition unmet.
	TimedOut Outcome = "timed-out"
)

// Result describes a completed wait.
type Result struct {
	Outcome  Outcome
	Elapsed  time.Duration
	Attempts int

	// LastErr is the most recent condition error, if any. Condition errors
	// do not abort the wait; the state is simply treated as not yet met.
	LastErr error
}

// Ok reports whether the condition was met.
func (r Result) Ok() bool { return r.Outcome == Succeeded }

// Condition reports whether the awaited state has been reached.
// A returned error counts as "not yet" and is kept in Result.LastErr.
type Condition func(ctx context.Context) (bool, error)

// Until polls cond every interval until it reports true or timeout elapses.
// The condition is evaluated once immediately before any sleep.
func Until(ctx context.Context, interval, timeout time.Duration, cond Condition) (Result, error) {
	start := time.Now()
	deadline := start.Add(timeout)
	res := Result{}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res.Attempts++
		done, err := cond(ctx)
		if err != nil {
			res.LastErr = err
		}
		if done && err == nil {
			res.Outcome = Succeeded
			res.Elapsed = time.Since(start)
			return res, nil
		}

		if !time.Now().Add(interval).Before(deadline) {
			res.Outcome = TimedOut
			res.Elapsed = time.Since(start)
			return res, nil
		}

		select {
		case <-ctx.Done():
			res.Elapsed = time.Since(start)
			return res, ctx.Err()
		case <-ticker.C:
		}
	}
}
