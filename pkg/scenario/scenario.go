package scenario

import (
	"strings"
	"time"
)

// Default values applied by the loader when a scenario omits them.
const (
	DefaultBaseURL      = "http://localhost:5000"
	DefaultActionDelay  = 1500 * time.Millisecond
	DefaultSlowMotion   = 50 * time.Millisecond
	DefaultNavigateURL  = "/"
	DefaultWaitDuration = time.Second
	DefaultScrollTime   = 5 * time.Second
)

// Kind is the YAML tag naming a step's action.
type Kind string

const (
	KindNavigate     Kind = "navigate"
	KindClick        Kind = "click"
	KindFill         Kind = "fill"
	KindWait         Kind = "wait"
	KindScrollSmooth Kind = "scroll_smooth"
	KindMessage      Kind = "message"
)

// Kinds lists every supported action kind in documentation order.
func Kinds() []Kind {
	return []Kind{KindNavigate, KindClick, KindFill, KindWait, KindScrollSmooth, KindMessage}
}

// Direction is the direction of a smooth scroll.
type Direction string

const (
	DirectionDown Direction = "down"
	DirectionUp   Direction = "up"
)

// Action is the closed set of step variants. Only the types in this
// package implement it.
type Action interface {
	Kind() Kind
	action()
}

// Navigate loads URL, resolved against the scenario's base URL unless absolute.
type Navigate struct {
	URL string
}

// Click clicks Selector, falling back to each of Fallback in order.
type Click struct {
	Selector string
	Fallback []string
}

// Fill clears Selector and types Value into it.
type Fill struct {
	Selector string
	Value    string
}

// Wait pauses the run for Duration. Time spent paused does not count.
type Wait struct {
	Duration time.Duration
}

// ScrollSmooth animates the page scroll across its full height.
type ScrollSmooth struct {
	Direction Direction
	Duration  time.Duration
}

// Message prints a banner on the operator console.
type Message struct {
	Text string
}

func (Navigate) Kind() Kind     { return KindNavigate }
func (Click) Kind() Kind        { return KindClick }
func (Fill) Kind() Kind         { return KindFill }
func (Wait) Kind() Kind         { return KindWait }
func (ScrollSmooth) Kind() Kind { return KindScrollSmooth }
func (Message) Kind() Kind      { return KindMessage }

func (Navigate) action()     {}
func (Click) action()        {}
func (Fill) action()         {}
func (Wait) action()         {}
func (ScrollSmooth) action() {}
func (Message) action()      {}

// Selectors returns the primary selector followed by the fallbacks.
func (c Click) Selectors() []string {
	out := make([]string, 0, len(c.Fallback)+1)
	out = append(out, c.Selector)
	return append(out, c.Fallback...)
}

// Step is one declared action with its caption and failure policy.
type Step struct {
	// Index is the 1-based position of the step in the file.
	Index       int
	Description string
	Subtitle    string
	// Optional steps may fail without aborting the run.
	Optional bool
	Action   Action
}

// Caption returns the text shown on the page while the step runs:
// the subtitle when set, otherwise the description.
func (s Step) Caption() string {
	if s.Subtitle != "" {
		return s.Subtitle
	}
	return s.Description
}

// Kind returns the step's action kind, or "" when it has no action.
func (s Step) Kind() Kind {
	if s.Action == nil {
		return ""
	}
	return s.Action.Kind()
}

// Config holds the pacing settings of a scenario.
type Config struct {
	// ActionDelay is slept between consecutive steps.
	ActionDelay time.Duration
	// SlowMotion is added by the driver to every browser operation.
	SlowMotion time.Duration
}

// Scenario is a loaded walkthrough.
type Scenario struct {
	Name        string
	Description string
	BaseURL     string
	Config      Config
	Steps       []Step
	// Path is the file the scenario was loaded from, if any.
	Path string
}

// ResolveURL returns target unchanged when it is absolute, otherwise
// target appended to the base URL.
func (s *Scenario) ResolveURL(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	base := s.BaseURL
	if strings.HasSuffix(base, "/") && strings.HasPrefix(target, "/") {
		base = strings.TrimSuffix(base, "/")
	}
	return base + target
}

// clone returns a copy whose step slice can be modified independently.
func (s *Scenario) clone() *Scenario {
	c := *s
	c.Steps = make([]Step, len(s.Steps))
	copy(c.Steps, s.Steps)
	return &c
}
