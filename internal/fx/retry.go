package fx

import (
	"context"
	"time"

	"p2parb/internal/adapters"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
)

// RetryingClient retries a rate lookup with exponential backoff.
type RetryingClient struct {
	next            adapters.RateClient
	maxTries        uint
	initialInterval time.Duration
}

func NewRetryingClient(next adapters.RateClient, maxTries uint, initialInterval time.Duration) *RetryingClient {
	if maxTries == 0 {
		maxTries = 1
	}
	if initialInterval <= 0 {
		initialInterval = 500 * time.Millisecond
	}
	return &RetryingClient{next: next, maxTries: maxTries, initialInterval: initialInterval}
}

func (c *RetryingClient) FetchRate(ctx context.Context, from string) (float64, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval
	policy.MaxInterval = c.initialInterval * 10

	notify := func(err error, d time.Duration) {
		logrus.WithError(err).WithFields(logrus.Fields{"currency": from, "backoff": d}).Debug("Retrying rate lookup")
	}

	operation := func() (float64, error) {
		v, err := c.next.FetchRate(ctx, from)
		if err != nil && ctx.Err() != nil {
			return 0, backoff.Permanent(err)
		}
		return v, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(notify))
}
