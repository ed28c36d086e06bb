package scheduler

import (
	"context"
	"time"

	"kanbanwatch/internal/domain"
)

// Ticker runs a job once immediately, then after every interval and on
// every Trigger. Triggers that arrive while the job runs collapse into one.
type Ticker struct {
	interval func() time.Duration
	trigger  chan struct{}
}

// NewDynamicTicker creates a ticker that asks for the interval before each
// wait, so settings changes apply without a restart
func NewDynamicTicker(interval func() time.Duration) *Ticker {
	return &Ticker{
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Interval returns the current wait between runs.
// Non-positive values use the default update time.
func (t *Ticker) Interval() time.Duration {
	if d := t.interval(); d > 0 {
		return d
	}
	return domain.DefaultUpdateTime * time.Second
}

// Trigger requests an early run. It never blocks.
func (t *Ticker) Trigger() {
	select {
	case t.trigger <- struct{}{}:
	default:
	}
}

// Run calls fn until ctx is canceled. Runs are sequential, so fn is never
// invoked concurrently with itself.
func (t *Ticker) Run(ctx context.Context, fn func(context.Context)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn(ctx)

	timer := time.NewTimer(t.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		case <-t.trigger:
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fn(ctx)
		timer.Reset(t.Interval())
	}
}
