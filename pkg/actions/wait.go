package actions

import (
	"context"

	"github.com/entrhq/autodemo/pkg/pause"
	"github.com/entrhq/autodemo/pkg/scenario"
)

// WaitHandler idles for a step's duration, not counting paused time.
type WaitHandler struct {
	env *Env
}

// NewWaitHandler creates a wait handler.
func NewWaitHandler(env *Env) *WaitHandler {
	return &WaitHandler{env: env}
}

// Run sleeps in PollInterval ticks, skipping ticks spent paused.
func (h *WaitHandler) Run(ctx context.Context, _ scenario.Step, a scenario.Wait) error {
	h.env.Log.Debugf("Waiting %s", a.Duration)
	return pause.Sleep(ctx, a.Duration, h.env.Overlay, h.env.Timing.PollInterval)
}
