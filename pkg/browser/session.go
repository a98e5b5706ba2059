package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/entrhq/autodemo/pkg/logging"
)

// Stage names the acquisition step a SessionError occurred in.
type Stage string

const (
	StageLaunch    Stage = "launch"
	StageRecording Stage = "recording"
	StageContext   Stage = "context"
	StagePage      Stage = "page"
)

// SessionError is returned by Open when the session cannot be acquired.
// Anything acquired before the failing stage has already been released.
type SessionError struct {
	Stage Stage
	Err   error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s failed: %v", e.Stage, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// Options configures Open.
type Options struct {
	Headless   bool
	SlowMotion time.Duration
	// Viewport is a preset name, see ResolveViewport.
	Viewport string
	Locale   string
	Timezone string
	// Record enables video capture into a timestamped directory
	// under RecordingsDir.
	Record        bool
	RecordingsDir string
	// Timeout bounds every page operation. Zero means DefaultTimeout.
	Timeout time.Duration
	// Now stamps the recording directory. Nil means time.Now.
	Now func() time.Time
}

// Session owns one Browser, one Context and one Page for a run.
type Session struct {
	Viewport  Viewport
	Recording Recording

	browser Browser
	context Context
	page    Page

	log       *logging.Logger
	closeOnce sync.Once
}

// Open launches a browser and prepares the single page a run uses.
// The viewport is resolved before the context is created so that the
// recorded frame size always matches it.
func Open(driver Driver, opts Options, log *logging.Logger) (*Session, error) {
	if log == nil {
		log = logging.Nop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.Timezone == "" {
		opts.Timezone = DefaultTimezone
	}
	if opts.RecordingsDir == "" {
		opts.RecordingsDir = DefaultRecordingsDir
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		Viewport: ResolveViewport(opts.Viewport),
		log:      log,
	}

	b, err := driver.Launch(LaunchOptions{
		Headless:   opts.Headless,
		SlowMotion: opts.SlowMotion,
	})
	if err != nil {
		return nil, &SessionError{Stage: StageLaunch, Err: err}
	}
	s.browser = b
	log.Infof("Browser launched (headless=%t, slow_motion=%s)", opts.Headless, opts.SlowMotion)

	contextOpts := ContextOptions{
		Viewport: s.Viewport,
		Locale:   opts.Locale,
		Timezone: opts.Timezone,
	}
	if opts.Record {
		dir := filepath.Join(opts.RecordingsDir, "demo_"+opts.Now().Format("20060102_150405"))
		if err := os.MkdirAll(dir, 0750); err != nil {
			s.release()
			return nil, &SessionError{Stage: StageRecording, Err: fmt.Errorf("failed to create recording directory: %w", err)}
		}
		size := s.Viewport
		contextOpts.RecordVideoDir = dir
		contextOpts.RecordVideoSize = &size
		s.Recording = Recording{Active: true, Dir: dir}
		log.Infof("Video recording enabled: %s (%dx%d)", dir, size.Width, size.Height)
	}

	c, err := b.NewContext(contextOpts)
	if err != nil {
		s.release()
		return nil, &SessionError{Stage: StageContext, Err: err}
	}
	s.context = c

	p, err := c.NewPage()
	if err != nil {
		s.release()
		return nil, &SessionError{Stage: StagePage, Err: err}
	}
	s.page = p
	p.SetDefaultTimeout(opts.Timeout)

	log.Infof("Session ready: viewport %dx%d, locale %s, timezone %s, timeout %s",
		s.Viewport.Width, s.Viewport.Height, opts.Locale, opts.Timezone, opts.Timeout)
	return s, nil
}

// Page returns the session's only page.
func (s *Session) Page() Page {
	return s.page
}

// Close releases the page, the context and the browser in that order.
// Only the first call has any effect. Failures are logged, never returned.
func (s *Session) Close() {
	s.closeOnce.Do(s.release)
}

func (s *Session) release() {
	if s.page != nil {
		s.log.Try("close page", s.page.Close)
		s.page = nil
	}
	if s.context != nil {
		s.log.Try("close context", s.context.Close)
		s.context = nil
	}
	if s.browser != nil {
		s.log.Try("close browser", s.browser.Close)
		s.browser = nil
	}
	s.log.Debugf("Session released")
}

// Videos lists the .webm files in the recording directory, newest last.
// It is only meaningful after Close, when the driver has finalised them.
func (s *Session) Videos() ([]string, error) {
	if !s.Recording.Active {
		return nil, nil
	}
	entries, err := os.ReadDir(s.Recording.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording directory: %w", err)
	}

	type video struct {
		path    string
		modTime time.Time
	}
	var videos []video
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".webm") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		videos = append(videos, video{path: filepath.Join(s.Recording.Dir, e.Name()), modTime: info.ModTime()})
	}
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].modTime.Before(videos[j].modTime)
	})

	paths := make([]string, len(videos))
	for i, v := range videos {
		paths[i] = v.path
	}
	return paths, nil
}
