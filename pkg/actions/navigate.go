package actions

import (
	"context"
	"fmt"

	"github.com/entrhq/autodemo/pkg/browser"
	"github.com/entrhq/autodemo/pkg/pause"
	"github.com/entrhq/autodemo/pkg/scenario"
)

// NavigateHandler loads a page and restores what the navigation cleared.
type NavigateHandler struct {
	env *Env
}

// NewNavigateHandler creates a navigate handler.
func NewNavigateHandler(env *Env) *NavigateHandler {
	return &NavigateHandler{env: env}
}

// Run navigates to the step URL, waiting only for DOMContentLoaded, then
// settles and re-draws the caption and the control surface.
func (h *NavigateHandler) Run(ctx context.Context, step scenario.Step, a scenario.Navigate) error {
	url := h.env.Scenario.ResolveURL(a.URL)
	h.env.Log.Infof("Navigating to %s", url)

	if err := h.env.Page.Goto(url, browser.WaitUntilDOMContentLoaded); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := pause.Delay(ctx, h.env.Timing.NavigateSettle); err != nil {
		return err
	}

	h.env.Log.Try("render caption", func() error {
		return h.env.Overlay.Caption(step.Caption())
	})
	h.env.Log.Try("inject control surface", h.env.Overlay.Inject)
	return nil
}
