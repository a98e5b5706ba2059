package browser

import "time"

// WaitUntil is the navigation completion condition.
type WaitUntil string

const (
	WaitUntilLoad             WaitUntil = "load"
	WaitUntilDOMContentLoaded WaitUntil = "domcontentloaded"
	WaitUntilNetworkIdle      WaitUntil = "networkidle"
)

// LaunchOptions configures browser launch.
type LaunchOptions struct {
	Headless bool
	// SlowMotion delays every driver operation by this amount.
	SlowMotion time.Duration
}

// ContextOptions configures the browsing context.
type ContextOptions struct {
	Viewport Viewport
	Locale   string
	Timezone string
	// RecordVideoDir enables video capture into this directory when set.
	RecordVideoDir  string
	RecordVideoSize *Viewport
}

// Driver launches browsers.
type Driver interface {
	Launch(opts LaunchOptions) (Browser, error)
}

// Browser is a launched browser process.
type Browser interface {
	NewContext(opts ContextOptions) (Context, error)
	Close() error
}

// Context is an isolated browsing context.
type Context interface {
	NewPage() (Page, error)
	Close() error
}

// Page is a single tab. Every blocking call is bounded by the page's
// default timeout unless a narrower one is passed.
type Page interface {
	Goto(url string, waitUntil WaitUntil) error
	Click(selector string, timeout time.Duration) error
	Fill(selector, value string) error
	Type(selector, value string, delay time.Duration) error
	Evaluate(script string) (interface{}, error)
	SetDefaultTimeout(d time.Duration)
	Close() error
}
