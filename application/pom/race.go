package pom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pom_automation/domain/entities"
)

// Condition is one possible reaction of the page to a composite action.
type Condition struct {
	Name string
	// Wait returns nil once the condition holds.
	Wait func(ctx context.Context, timeout time.Duration) error
	// Outcome is evaluated only for the winning condition.
	Outcome func(ctx context.Context) entities.Outcome
}

type raceResult struct {
	condition Condition
	err       error
}

// Race waits for all conditions at once and returns the outcome of the first one to hold.
// If none holds within timeout, or all of them fail, the outcome is Unknown.
// Ties are decided by whichever wait returns first. Waits that lose see their ctx
// cancelled and are expected to return promptly.
func Race(ctx context.Context, timeout time.Duration, conditions ...Condition) entities.Outcome {
	if len(conditions) == 0 {
		return entities.Unknown("nothing to wait for")
	}

	raceCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make(chan raceResult, len(conditions))
	for _, c := range conditions {
		go func() {
			results <- raceResult{condition: c, err: c.Wait(raceCtx, timeout)}
		}()
	}

	var failures []string
	for range conditions {
		select {
		case r := <-results:
			if r.err == nil {
				cancel()
				if r.condition.Outcome == nil {
					return entities.Success()
				}
				return r.condition.Outcome(ctx)
			}
			failures = append(failures, fmt.Sprintf("%s: %v", r.condition.Name, r.err))
		case <-raceCtx.Done():
			if ctx.Err() != nil {
				return entities.Unknown(fmt.Sprintf("cancelled: %v", ctx.Err()))
			}
			return entities.Unknown(fmt.Sprintf("no outcome within %s", timeout))
		}
	}
	return entities.Unknown("no outcome: " + strings.Join(failures, "; "))
}

// Succeed is the outcome builder of success conditions.
func Succeed(context.Context) entities.Outcome {
	return entities.Success()
}

// Await races conditions for the configured outcome timeout.
func (c *Component[K]) Await(ctx context.Context, conditions ...Condition) entities.Outcome {
	c.logger.Debugf("Awaiting outcome of %d conditions", len(conditions))
	return Race(ctx, c.settings.OutcomeTimeout, conditions...)
}
