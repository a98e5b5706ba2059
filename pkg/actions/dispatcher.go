package actions

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/entrhq/autodemo/pkg/scenario"
)

// ErrUnknownAction is reported for a step whose action is nil or not one
// of the scenario variants.
var ErrUnknownAction = errors.New("unknown action")

// FailureFunc observes the error behind a failed step.
type FailureFunc func(step scenario.Step, err error)

// Dispatcher routes steps to their handlers.
type Dispatcher struct {
	env       *Env
	onFailure FailureFunc

	navigate *NavigateHandler
	click    *ClickHandler
	fill     *FillHandler
	wait     *WaitHandler
	scroll   *ScrollHandler
	message  *MessageHandler
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithFailureFunc registers fn to receive the error of every failed step.
func WithFailureFunc(fn FailureFunc) DispatcherOption {
	return func(d *Dispatcher) {
		d.onFailure = fn
	}
}

// NewDispatcher builds the handler set over env.
func NewDispatcher(env Env, opts ...DispatcherOption) *Dispatcher {
	env.withDefaults()
	e := &env
	d := &Dispatcher{
		env:      e,
		navigate: NewNavigateHandler(e),
		click:    NewClickHandler(e),
		fill:     NewFillHandler(e),
		wait:     NewWaitHandler(e),
		scroll:   NewScrollHandler(e),
		message:  NewMessageHandler(e),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs one step and reports whether it succeeded. The caption is
// drawn first on a best-effort basis. Handler errors and panics are
// logged and reported as false.
func (d *Dispatcher) Execute(ctx context.Context, step scenario.Step) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.env.Log.Errorf("Step %d panicked: %v\n%s", step.Index, r, debug.Stack())
			d.fail(step, fmt.Errorf("panic: %v", r))
			ok = false
		}
	}()

	if text := step.Caption(); text != "" {
		d.env.Log.Try("render caption", func() error {
			return d.env.Overlay.Caption(text)
		})
	}

	if err := d.run(ctx, step); err != nil {
		d.env.Log.Errorf("Step %d (%s) failed: %v", step.Index, step.Kind(), err)
		d.fail(step, err)
		return false
	}
	return true
}

func (d *Dispatcher) run(ctx context.Context, step scenario.Step) error {
	switch a := step.Action.(type) {
	case scenario.Navigate:
		return d.navigate.Run(ctx, step, a)
	case scenario.Click:
		return d.click.Run(ctx, step, a)
	case scenario.Fill:
		return d.fill.Run(ctx, step, a)
	case scenario.Wait:
		return d.wait.Run(ctx, step, a)
	case scenario.ScrollSmooth:
		return d.scroll.Run(ctx, step, a)
	case scenario.Message:
		return d.message.Run(ctx, step, a)
	default:
		d.env.Log.Warnf("Step %d has no handler for %T", step.Index, step.Action)
		return fmt.Errorf("%w: %T", ErrUnknownAction, step.Action)
	}
}

func (d *Dispatcher) fail(step scenario.Step, err error) {
	if d.onFailure != nil {
		d.onFailure(step, err)
	}
}
