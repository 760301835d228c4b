// Package retry runs operations with capped exponential backoff on top of avast/retry-go.
package retry

import (
	"context"
	"time"

	retrygo "github.com/avast/retry-go/v4"
)

type config struct {
	attempts  uint
	unlimited bool
	delay     time.Duration
	maxDelay  time.Duration
	onRetry   func(attempt uint, err error)
	timer     Timer
}

// Timer supplies the waits between attempts.
type Timer interface {
	After(d time.Duration) <-chan time.Time
}

// Option customizes a Retrier.
type Option func(*config)

// Retrier executes an operation until it succeeds, returns an unrecoverable error,
// exhausts its attempts or the context ends.
type Retrier struct {
	cfg config
}

// New builds a Retrier. Defaults: 3 attempts, 1s base delay, 5s cap.
func New(opts ...Option) *Retrier {
	cfg := config{
		attempts: 3,
		delay:    time.Second,
		maxDelay: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.attempts == 0 {
		cfg.attempts = 1
	}
	return &Retrier{cfg: cfg}
}

// Execute runs operation with the configured policy. Only the last error is returned.
func (r *Retrier) Execute(ctx context.Context, operation func() error) error {
	attempts := r.cfg.attempts
	if r.cfg.unlimited {
		attempts = 0
	}
	options := []retrygo.Option{
		retrygo.Attempts(attempts),
		retrygo.Delay(r.cfg.delay),
		retrygo.MaxDelay(r.cfg.maxDelay),
		retrygo.DelayType(retrygo.BackOffDelay),
		retrygo.LastErrorOnly(true),
		retrygo.Context(ctx),
	}
	if r.cfg.timer != nil {
		options = append(options, retrygo.WithTimer(r.cfg.timer))
	}
	if r.cfg.onRetry != nil {
		onRetry := r.cfg.onRetry
		options = append(options, retrygo.OnRetry(func(n uint, err error) {
			onRetry(n+1, err)
		}))
	}

	return retrygo.Do(operation, options...)
}

// Unrecoverable marks err so Execute stops retrying and returns it as is.
func Unrecoverable(err error) error {
	return retrygo.Unrecoverable(err)
}

// WithAttempts sets the total number of attempts, including the first one.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithUnlimitedAttempts retries until the operation succeeds, returns an unrecoverable
// error or the context ends. It overrides WithAttempts.
func WithUnlimitedAttempts() Option {
	return func(c *config) {
		c.unlimited = true
	}
}

// WithTimer replaces the wall-clock wait between attempts.
func WithTimer(t Timer) Option {
	return func(c *config) {
		c.timer = t
	}
}

// WithDelay sets the base delay before the first retry.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential growth of the delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithOnRetry registers a callback invoked after each recoverable failed attempt,
// the last one included. attempt counts from 1.
func WithOnRetry(fn func(attempt uint, err error)) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}
