package actions

import (
	"io"
	"time"

	"github.com/entrhq/autodemo/pkg/browser"
	"github.com/entrhq/autodemo/pkg/logging"
	"github.com/entrhq/autodemo/pkg/pause"
	"github.com/entrhq/autodemo/pkg/scenario"
)

// Timing holds the fixed delays handlers apply around driver calls.
type Timing struct {
	NavigateSettle time.Duration
	ClickTimeout   time.Duration
	ClickSettle    time.Duration
	FillClear      time.Duration
	FillSettle     time.Duration
	KeystrokeDelay time.Duration
	// PollInterval is the pause check period of waits and paused scrolls.
	PollInterval time.Duration
	// ScrollFPS and MinScrollFrames shape the smooth scroll animation.
	ScrollFPS       int
	MinScrollFrames int
}

// DefaultTiming returns the delays used for recorded demos.
func DefaultTiming() Timing {
	return Timing{
		NavigateSettle:  500 * time.Millisecond,
		ClickTimeout:    5 * time.Second,
		ClickSettle:     300 * time.Millisecond,
		FillClear:       200 * time.Millisecond,
		FillSettle:      300 * time.Millisecond,
		KeystrokeDelay:  80 * time.Millisecond,
		PollInterval:    pause.DefaultPoll,
		ScrollFPS:       20,
		MinScrollFrames: 20,
	}
}

// Overlay is the control surface a handler draws on. *overlay.Surface
// implements it.
type Overlay interface {
	pause.Gate
	Inject() error
	Caption(text string) error
}

// nopOverlay draws nothing and is never paused.
type nopOverlay struct{}

func (nopOverlay) IsPaused() bool       { return pause.Never.IsPaused() }
func (nopOverlay) Inject() error        { return nil }
func (nopOverlay) Caption(string) error { return nil }

// Env is everything a handler needs to run a step.
type Env struct {
	Page     browser.Page
	Scenario *scenario.Scenario
	Overlay  Overlay
	Log      *logging.Logger
	// Console receives operator-facing output such as message banners.
	Console io.Writer
	Timing  Timing
}

func (e *Env) withDefaults() {
	if e.Log == nil {
		e.Log = logging.Nop()
	}
	if e.Console == nil {
		e.Console = io.Discard
	}
	if e.Timing == (Timing{}) {
		e.Timing = DefaultTiming()
	}
	if e.Overlay == nil {
		e.Overlay = nopOverlay{}
	}
	if e.Scenario == nil {
		e.Scenario = &scenario.Scenario{BaseURL: scenario.DefaultBaseURL}
	}
}
