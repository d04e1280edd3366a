package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// initial wait before the first poll scales with batch size but
	// never drops below the floor
	initialWaitFloor   = 2 * time.Second
	initialWaitPerJob  = 400 * time.Millisecond
	pollInitialBackoff = 500 * time.Millisecond
	pollMaxInterval    = 4 * time.Second
	// hard ceiling on the whole poll phase; jobs still pending after
	// it are surfaced with their in-flight status, never retried
	// indefinitely
	pollCeiling = 45 * time.Second
)

// WaitAndFetch waits a duration proportional to the batch size, then
// polls for the batch results with bounded exponential backoff. It
// returns once every job has finished or the hard ceiling elapses;
// jobs still in flight at that point keep their pending status so the
// caller can report them distinctly.
func (c *Client) WaitAndFetch(ctx context.Context, tokens []string) ([]JobResult, error) {
	initialWait := initialWaitFloor
	if scaled := time.Duration(len(tokens)) * initialWaitPerJob; scaled > initialWait {
		initialWait = scaled
	}
	c.logger.Debug("waiting before first result poll",
		"jobs", len(tokens), "wait", initialWait)

	select {
	case <-time.After(initialWait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = pollInitialBackoff
	policy.MaxInterval = pollMaxInterval
	policy.MaxElapsedTime = pollCeiling

	var results []JobResult
	operation := func() error {
		fetched, err := c.FetchBatch(ctx, tokens)
		if err != nil {
			// transport errors are fatal for the batch, not retried
			results = nil
			return backoff.Permanent(err)
		}
		results = fetched
		for _, r := range fetched {
			if r.InFlight() {
				return fmt.Errorf("execution still pending")
			}
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(policy, ctx))
	if err != nil {
		if results != nil {
			// ceiling reached with jobs still pending; hand back what
			// we have, pending statuses intact
			c.logger.Warn("poll ceiling reached with pending jobs", "jobs", len(tokens))
			return results, nil
		}
		return nil, err
	}
	return results, nil
}
