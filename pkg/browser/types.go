package browser

import (
	"strings"
	"time"
)

// Default session settings.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
	DefaultLocale         = "zh-CN"
	DefaultTimezone       = "Asia/Shanghai"
	DefaultRecordingsDir  = "recordings"
)

// Viewport presets accepted by ResolveViewport.
const (
	ViewportBig   = "big"
	ViewportSmall = "small"
)

// Viewport is the page size in CSS pixels.
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// ResolveViewport maps a preset name to a size. Unknown and empty names
// resolve to the 1280x800 default.
func ResolveViewport(name string) Viewport {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ViewportBig:
		return Viewport{Width: 1920, Height: 1080}
	case ViewportSmall:
		return Viewport{Width: 1280, Height: 720}
	default:
		return Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
}

// Recording describes video capture for a session.
type Recording struct {
	Active bool
	Dir    string
}
