package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the scenario file does not exist.
	ErrNotFound = errors.New("scenario not found")
	// ErrParse is returned for malformed YAML and unknown action names.
	ErrParse = errors.New("scenario parse error")
	// ErrInvalid is returned when a step is structurally invalid.
	ErrInvalid = errors.New("invalid scenario")
	// ErrEmpty is returned when the scenario declares no steps.
	ErrEmpty = errors.New("scenario has no steps")
)

// LoadError describes why a scenario could not be loaded. It matches one of
// ErrNotFound, ErrParse, ErrInvalid or ErrEmpty with errors.Is.
type LoadError struct {
	Path string
	// Step is the 1-based index of the offending step, or 0.
	Step   int
	Reason error
	Err    error
}

func (e *LoadError) Error() string {
	msg := e.Reason.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Step > 0 {
		msg = fmt.Sprintf("%s (step %d)", msg, e.Step)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is reports whether target is the sentinel reason of this error.
func (e *LoadError) Is(target error) bool {
	return target == e.Reason
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func invalidStep(index int, format string, args ...interface{}) *LoadError {
	return &LoadError{Step: index, Reason: ErrInvalid, Err: fmt.Errorf(format, args...)}
}
