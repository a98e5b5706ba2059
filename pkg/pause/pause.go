// Package pause provides the interruptible delays used while a run can be
// paused from the page under automation.
//
// The pause flag is owned by the page; Gate is its read side. Every
// function here polls the gate from the calling goroutine and returns
// early with ctx.Err() when the context is cancelled.
package pause

import (
	"context"
	"time"
)

// DefaultPoll is the interval at which a paused run re-checks the gate.
const DefaultPoll = 100 * time.Millisecond

// Gate reports whether the run is currently paused.
type Gate interface {
	IsPaused() bool
}

// GateFunc adapts a function to Gate.
type GateFunc func() bool

// IsPaused calls f.
func (f GateFunc) IsPaused() bool { return f() }

// Never is a gate that is never paused.
var Never Gate = GateFunc(func() bool { return false })

// Delay sleeps for d or until ctx is done.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Hold blocks while g reports paused, re-checking every poll.
func Hold(ctx context.Context, g Gate, poll time.Duration) error {
	if poll <= 0 {
		poll = DefaultPoll
	}
	for g.IsPaused() {
		if err := Delay(ctx, poll); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// Sleep waits for d of unpaused time in ticks of at most tick. Ticks
// spent paused do not count towards d, so wall-clock time exceeds d by
// however long the gate stays paused.
func Sleep(ctx context.Context, d time.Duration, g Gate, tick time.Duration) error {
	if tick <= 0 {
		tick = DefaultPoll
	}
	remaining := d
	for remaining > 0 {
		if g.IsPaused() {
			if err := Delay(ctx, tick); err != nil {
				return err
			}
			continue
		}
		step := tick
		if remaining < step {
			step = remaining
		}
		if err := Delay(ctx, step); err != nil {
			return err
		}
		remaining -= step
	}
	return ctx.Err()
}
