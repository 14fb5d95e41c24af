package captcha

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig controls the exponential backoff applied by a RetryProvider.
// The zero value is usable and means: 1s initial delay, 30s cap, 2x growth,
// 3 retries.
type RetryConfig struct {
	// MinDelay is the delay before the first retry.
	MinDelay time.Duration
	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration
	// Factor multiplies the delay after each retry.
	Factor float64
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries uint64
	// Notify, when set, is called synchronously with the failed attempt's
	// error and the upcoming delay, before each backoff sleep. It should
	// return promptly; the retry loop waits for it.
	Notify func(err error, next time.Duration)
}

func (c *RetryConfig) defaults() {
	if c.MinDelay == 0 {
		c.MinDelay = 1 * time.Second
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Factor == 0 {
		c.Factor = 2.0
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

// newBackOff builds the per-call backoff schedule. Each call gets a fresh
// schedule so concurrent operations never share backoff state.
func (c RetryConfig) newBackOff(ctx context.Context) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.MinDelay
	exp.MaxInterval = c.MaxDelay
	exp.Multiplier = c.Factor
	exp.MaxElapsedTime = 0 // bounded by MaxRetries, not wall time
	return backoff.WithContext(backoff.WithMaxRetries(exp, c.MaxRetries), ctx)
}

// RetryProvider decorates another Provider with automatic retries on
// transient failures. Errors whose IsRetryable reports false, and the last
// error once the retry budget is spent, propagate unchanged: the decorator
// never alters an error's retry classification.
//
// Stacking works like any other Provider composition:
//
//	inner := capsolver.New(apiKey)
//	provider := captcha.NewRetryProvider[capsolver.Solution](inner, captcha.RetryConfig{})
//	svc, _ := captcha.NewService[capsolver.Solution](provider, captcha.Config{})
type RetryProvider[S any] struct {
	inner Provider[S]
	cfg   RetryConfig
}

// NewRetryProvider wraps inner with the given retry behavior. Zero fields in
// cfg take their documented defaults.
func NewRetryProvider[S any](inner Provider[S], cfg RetryConfig) *RetryProvider[S] {
	cfg.defaults()
	return &RetryProvider[S]{inner: inner, cfg: cfg}
}

// Inner returns the wrapped provider.
func (p *RetryProvider[S]) Inner() Provider[S] { return p.inner }

// CreateTask submits the task, retrying transient failures. Every attempt
// resubmits the identical task.
func (p *RetryProvider[S]) CreateTask(ctx context.Context, task Task) (CreateResult[S], error) {
	return backoff.RetryNotifyWithData(func() (CreateResult[S], error) {
		res, err := p.inner.CreateTask(ctx, task)
		if err != nil && !IsRetryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, p.cfg.newBackOff(ctx), p.notify)
}

// GetTaskResult polls the task, retrying transient failures. Every attempt
// polls the identical task id.
func (p *RetryProvider[S]) GetTaskResult(ctx context.Context, id TaskID) (*S, error) {
	return backoff.RetryNotifyWithData(func() (*S, error) {
		sol, err := p.inner.GetTaskResult(ctx, id)
		if err != nil && !IsRetryable(err) {
			return sol, backoff.Permanent(err)
		}
		return sol, err
	}, p.cfg.newBackOff(ctx), p.notify)
}

func (p *RetryProvider[S]) notify(err error, next time.Duration) {
	if p.cfg.Notify != nil {
		p.cfg.Notify(err, next)
	}
}
