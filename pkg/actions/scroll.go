package actions

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/entrhq/autodemo/pkg/pause"
	"github.com/entrhq/autodemo/pkg/scenario"
)

const (
	scrollHeightScript   = "document.documentElement.scrollHeight"
	viewportHeightScript = "window.innerHeight"
)

// ScrollHandler animates a full-page scroll frame by frame.
type ScrollHandler struct {
	env *Env
}

// NewScrollHandler creates a smooth scroll handler.
func NewScrollHandler(env *Env) *ScrollHandler {
	return &ScrollHandler{env: env}
}

// Run scrolls between the top and the last full viewport of the page.
// Every frame waits for the run to be unpaused first, and a final
// scrollTo lands exactly on the end offset.
func (h *ScrollHandler) Run(ctx context.Context, _ scenario.Step, a scenario.ScrollSmooth) error {
	pageHeight, err := h.evalInt(scrollHeightScript)
	if err != nil {
		return err
	}
	viewportHeight, err := h.evalInt(viewportHeightScript)
	if err != nil {
		return err
	}

	start, end := 0, pageHeight-viewportHeight
	if a.Direction == scenario.DirectionUp {
		start, end = end, start
	}

	t := h.env.Timing
	frames := int(a.Duration.Seconds() * float64(t.ScrollFPS))
	if frames < t.MinScrollFrames {
		frames = t.MinScrollFrames
	}
	if frames < 1 {
		frames = 1
	}
	stepSize := float64(end-start) / float64(frames)
	frameDelay := a.Duration / time.Duration(frames)

	h.env.Log.Debugf("Scrolling %s from %d to %d in %d frames", a.Direction, start, end, frames)

	pos := float64(start)
	for i := 0; i < frames; i++ {
		if err := pause.Hold(ctx, h.env.Overlay, t.PollInterval); err != nil {
			return err
		}
		pos += stepSize
		if err := h.scrollTo(int(pos)); err != nil {
			return err
		}
		if err := pause.Delay(ctx, frameDelay); err != nil {
			return err
		}
	}
	return h.scrollTo(end)
}

func (h *ScrollHandler) scrollTo(y int) error {
	if _, err := h.env.Page.Evaluate(fmt.Sprintf("window.scrollTo(0, %d)", y)); err != nil {
		return fmt.Errorf("scroll to %d: %w", y, err)
	}
	return nil
}

func (h *ScrollHandler) evalInt(script string) (int, error) {
	v, err := h.env.Page.Evaluate(script)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", script, err)
	}
	n, ok := toInt(v)
	if !ok {
		return 0, fmt.Errorf("read %s: unexpected result %v (%T)", script, v, v)
	}
	return n, nil
}

// toInt accepts the numeric types a driver may decode JS numbers into.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float32:
		return int(math.Round(float64(n))), true
	case float64:
		return int(math.Round(n)), true
	default:
		return 0, false
	}
}
