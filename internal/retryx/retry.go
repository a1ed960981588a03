// Package retryx implements bounded retry with backoff for storage
// operations. Errors are classified by the caller: transient failures are
// retried with increasing delay, terminal failures (bad input, missing
// configuration) short-circuit immediately with no delay.
package retryx

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Classification tells the policy whether an error is worth retrying.
type Classification int

const (
	Terminal Classification = iota
	Retryable
)

// Classifier decides how a given error should be treated. It is invoked once
// per failed attempt with the error the operation returned.
type Classifier func(error) Classification

// Policy bounds the total number of attempts and sets the base backoff delay.
// Delays grow exponentially from Base (1s, 2s, ...), so the default policy
// matches a 3-attempt, increasing-backoff schedule.
type Policy struct {
	MaxAttempts uint64
	Base        time.Duration
}

// Default is the policy used by services talking to the backing store.
var Default = Policy{MaxAttempts: 3, Base: time.Second}

// Do runs op, retrying per the policy while classify reports Retryable.
// A Terminal classification returns the error at once. The error returned
// after exhaustion is the one from the last attempt; match it with errors.Is.
func (p Policy) Do(ctx context.Context, classify Classifier, op func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(p.MaxAttempts-1, retry.NewExponential(p.Base))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if classify(err) == Retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}

// Do applies the default policy.
func Do(ctx context.Context, classify Classifier, op func(ctx context.Context) error) error {
	return Default.Do(ctx, classify, op)
}
