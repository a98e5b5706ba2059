// Package overlay draws the in-page control surface: a floating
// pause/resume toggle backed by a localStorage flag, and caption banners.
//
// The pause flag lives in the page's localStorage, so it survives
// navigation within one origin and starts over as "not paused" after a
// cross-origin navigation. Surface is the read side of the flag and
// implements pause.Gate.
package overlay

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/entrhq/autodemo/pkg/browser"
	"github.com/entrhq/autodemo/pkg/logging"
)

// PauseKey is the localStorage key holding the pause flag.
const PauseKey = "autodemo:paused"

const (
	// CaptionDuration is how long a caption stays on screen.
	CaptionDuration = 5 * time.Second
	// ToggleDebounce ignores repeated toggle activations within this window.
	ToggleDebounce = 200 * time.Millisecond
)

//go:embed control.js
var controlJS string

//go:embed caption.js
var captionJS string

// ErrNoDocument is returned when the page has no body to draw into yet.
var ErrNoDocument = errors.New("page has no document body")

// Surface manages the control surface on one page.
type Surface struct {
	page browser.Page
	log  *logging.Logger
}

// New returns a Surface for page.
func New(page browser.Page, log *logging.Logger) *Surface {
	if log == nil {
		log = logging.Nop()
	}
	return &Surface{page: page, log: log}
}

// Inject seeds the pause flag and creates or repairs the toggle. It is
// idempotent and must be repeated after every navigation.
func (s *Surface) Inject() error {
	script, err := call(controlJS, map[string]interface{}{
		"key":        PauseKey,
		"debounceMs": ToggleDebounce.Milliseconds(),
	})
	if err != nil {
		return err
	}
	return s.eval("inject control surface", script)
}

// Caption shows text in a banner at the bottom of the page, replacing any
// previous caption. Empty text is a no-op.
func (s *Surface) Caption(text string) error {
	if text == "" {
		return nil
	}
	script, err := call(captionJS, map[string]interface{}{
		"text":       text,
		"durationMs": CaptionDuration.Milliseconds(),
	})
	if err != nil {
		return err
	}
	s.log.Debugf("Caption: %s", text)
	return s.eval("render caption", script)
}

// IsPaused reads the pause flag. Evaluation errors read as not paused.
func (s *Surface) IsPaused() bool {
	key, _ := json.Marshal(PauseKey)
	result, err := s.page.Evaluate(fmt.Sprintf("localStorage.getItem(%s) === 'true'", key))
	if err != nil {
		s.log.Debugf("Pause flag unreadable, assuming running: %v", err)
		return false
	}
	paused, _ := result.(bool)
	return paused
}

func (s *Surface) eval(op, script string) error {
	result, err := s.page.Evaluate(script)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ok, isBool := result.(bool); isBool && !ok {
		return fmt.Errorf("%s: %w", op, ErrNoDocument)
	}
	return nil
}

// call renders a function expression applied to a JSON-encoded argument.
func call(fn string, arg interface{}) (string, error) {
	data, err := json.Marshal(arg)
	if err != nil {
		return "", fmt.Errorf("failed to encode script argument: %w", err)
	}
	return fmt.Sprintf("(%s)(%s)", fn, data), nil
}
