package browser

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightOptions configures the playwright-go driver.
type PlaywrightOptions struct {
	// Browser selects chromium (default), firefox or webkit.
	Browser string
	// SkipInstall assumes the driver and browsers are already installed.
	SkipInstall bool
	// Output receives driver install and server output. Nil discards it.
	Output io.Writer
}

type playwrightDriver struct {
	opts PlaywrightOptions
}

// NewPlaywrightDriver returns a Driver backed by playwright-go. The
// playwright server is installed and started on Launch and stopped when
// the returned Browser is closed.
func NewPlaywrightDriver(opts PlaywrightOptions) Driver {
	return &playwrightDriver{opts: opts}
}

// Launch starts playwright and launches the configured browser.
func (d *playwrightDriver) Launch(opts LaunchOptions) (Browser, error) {
	out := d.opts.Output
	if out == nil {
		out = io.Discard
	}
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  out,
		Stderr:  out,
	}

	if !d.opts.SkipInstall {
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch strings.ToLower(d.opts.Browser) {
	case "", "chromium":
		browserType = pw.Chromium
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		_ = pw.Stop()
		return nil, fmt.Errorf("unsupported browser %q", d.opts.Browser)
	}

	b, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(milliseconds(opts.SlowMotion)),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &pwBrowser{pw: pw, browser: b}, nil
}

type pwBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func (b *pwBrowser) NewContext(opts ContextOptions) (Context, error) {
	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	}
	if opts.Locale != "" {
		contextOpts.Locale = playwright.String(opts.Locale)
	}
	if opts.Timezone != "" {
		contextOpts.TimezoneId = playwright.String(opts.Timezone)
	}
	if opts.RecordVideoDir != "" {
		size := opts.Viewport
		if opts.RecordVideoSize != nil {
			size = *opts.RecordVideoSize
		}
		contextOpts.RecordVideo = &playwright.RecordVideo{
			Dir:  opts.RecordVideoDir,
			Size: &playwright.Size{Width: size.Width, Height: size.Height},
		}
	}

	ctx, err := b.browser.NewContext(contextOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	return &pwContext{context: ctx}, nil
}

// Close closes the browser and stops the playwright server.
func (b *pwBrowser) Close() error {
	var errs []error
	if err := b.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := b.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	return errors.Join(errs...)
}

type pwContext struct {
	context playwright.BrowserContext
}

func (c *pwContext) NewPage() (Page, error) {
	page, err := c.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &pwPage{page: page}, nil
}

// Close finalises any recorded video.
func (c *pwContext) Close() error {
	return c.context.Close()
}

type pwPage struct {
	page playwright.Page
}

func (p *pwPage) Goto(url string, waitUntil WaitUntil) error {
	opts := playwright.PageGotoOptions{}
	if waitUntil != "" {
		state := playwright.WaitUntilState(waitUntil)
		opts.WaitUntil = &state
	}
	if _, err := p.page.Goto(url, opts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (p *pwPage) Click(selector string, timeout time.Duration) error {
	opts := playwright.PageClickOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(milliseconds(timeout))
	}
	if err := p.page.Click(selector, opts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (p *pwPage) Fill(selector, value string) error {
	if err := p.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

func (p *pwPage) Type(selector, value string, delay time.Duration) error {
	opts := playwright.PageTypeOptions{}
	if delay > 0 {
		opts.Delay = playwright.Float(milliseconds(delay))
	}
	if err := p.page.Type(selector, value, opts); err != nil {
		return fmt.Errorf("type failed: %w", err)
	}
	return nil
}

func (p *pwPage) Evaluate(script string) (interface{}, error) {
	result, err := p.page.Evaluate(script)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	return result, nil
}

func (p *pwPage) SetDefaultTimeout(d time.Duration) {
	p.page.SetDefaultTimeout(milliseconds(d))
	p.page.SetDefaultNavigationTimeout(milliseconds(d))
}

func (p *pwPage) Close() error {
	return p.page.Close()
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
