package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/autodemo/pkg/pause"
	"github.com/entrhq/autodemo/pkg/scenario"
)

// ClickError lists every selector a failed click tried.
type ClickError struct {
	Attempts []ClickAttempt
}

// ClickAttempt is one failed selector.
type ClickAttempt struct {
	Selector string
	Err      error
}

func (e *ClickError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s (%v)", a.Selector, a.Err)
	}
	return "all click attempts failed: " + strings.Join(parts, "; ")
}

// ClickHandler clicks an element, trying fallback selectors in order.
type ClickHandler struct {
	env *Env
}

// NewClickHandler creates a click handler.
func NewClickHandler(env *Env) *ClickHandler {
	return &ClickHandler{env: env}
}

// Run clicks the first selector that succeeds. When none does, an
// optional step still succeeds.
func (h *ClickHandler) Run(ctx context.Context, step scenario.Step, a scenario.Click) error {
	var failed []ClickAttempt

	for i, sel := range a.Selectors() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.env.Page.Click(sel, h.env.Timing.ClickTimeout); err != nil {
			h.env.Log.Debugf("Click on %q failed: %v", sel, err)
			failed = append(failed, ClickAttempt{Selector: sel, Err: err})
			continue
		}
		if i > 0 {
			h.env.Log.Infof("Fallback selector succeeded: %s", sel)
		}
		return pause.Delay(ctx, h.env.Timing.ClickSettle)
	}

	clickErr := &ClickError{Attempts: failed}
	if step.Optional {
		h.env.Log.Infof("Optional click skipped: %v", clickErr)
		return nil
	}
	return clickErr
}
