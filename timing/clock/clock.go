// Package clock paces interpreter steps in wall time.
package clock

import (
	"context"
	"fmt"
	"time"
)

// Pacer blocks between steps so that a loop runs at a fixed rate.
type Pacer interface {
	// Wait blocks until the next step may run or ctx is done.
	Wait(ctx context.Context) error
	// Stop releases the pacer's resources.
	Stop()
}

// Clock is a Pacer driven by a time.Ticker.
type Clock struct {
	interval time.Duration
	ticker   *time.Ticker
	ticks    uint64
}

var _ Pacer = (*Clock)(nil)

// New creates a clock firing once per interval.
func New(interval time.Duration) (*Clock, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("clock interval must be > 0, got %v", interval)
	}

	return &Clock{
		interval: interval,
		ticker:   time.NewTicker(interval),
	}, nil
}

// Interval returns the time between ticks.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Ticks returns the number of ticks waited for so far.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Wait blocks until the next tick.
func (c *Clock) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		c.ticks++
		return nil
	}
}

// Stop stops the underlying ticker.
func (c *Clock) Stop() {
	c.ticker.Stop()
}

// Unpaced is a Pacer that never blocks. Headless runs and tests use it to
// execute as fast as possible.
type Unpaced struct{}

// Wait only reports cancellation.
func (Unpaced) Wait(ctx context.Context) error {
	return ctx.Err()
}

// Stop does nothing.
func (Unpaced) Stop() {}
