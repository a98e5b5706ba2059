package actions

import (
	"context"
	"fmt"

	"github.com/entrhq/autodemo/pkg/pause"
	"github.com/entrhq/autodemo/pkg/scenario"
)

// FillHandler types into a form field at human speed.
type FillHandler struct {
	env *Env
}

// NewFillHandler creates a fill handler.
func NewFillHandler(env *Env) *FillHandler {
	return &FillHandler{env: env}
}

// Run clears the field, then types the value one keystroke at a time.
func (h *FillHandler) Run(ctx context.Context, _ scenario.Step, a scenario.Fill) error {
	t := h.env.Timing

	if err := h.env.Page.Fill(a.Selector, ""); err != nil {
		return fmt.Errorf("clear %s: %w", a.Selector, err)
	}
	if err := pause.Delay(ctx, t.FillClear); err != nil {
		return err
	}
	if err := h.env.Page.Type(a.Selector, a.Value, t.KeystrokeDelay); err != nil {
		return fmt.Errorf("type into %s: %w", a.Selector, err)
	}
	return pause.Delay(ctx, t.FillSettle)
}
