// Package browsertest provides an in-memory browser.Driver for tests.
package browsertest

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/entrhq/autodemo/pkg/browser"
)

// Call records one page operation.
type Call struct {
	Method string
	Args   []string
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Method, strings.Join(c.Args, ", "))
}

// Driver is a fake browser.Driver. Set the *Err fields to make the
// matching acquisition stage fail.
type Driver struct {
	LaunchErr  error
	ContextErr error
	PageErr    error

	// Close errors returned by the browser and context.
	BrowserCloseErr error
	ContextCloseErr error

	// Page is handed out by the context. New creates one.
	Page *Page

	mu       sync.Mutex
	launches []browser.LaunchOptions
	contexts []browser.ContextOptions
	closed   []string
}

// New returns a driver whose page succeeds at everything.
func New() *Driver {
	d := &Driver{}
	d.Page = &Page{driver: d}
	return d
}

// Launch implements browser.Driver.
func (d *Driver) Launch(opts browser.LaunchOptions) (browser.Browser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.launches = append(d.launches, opts)
	if d.LaunchErr != nil {
		return nil, d.LaunchErr
	}
	return &Browser{driver: d}, nil
}

// Launches returns the options of every Launch call.
func (d *Driver) Launches() []browser.LaunchOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]browser.LaunchOptions(nil), d.launches...)
}

// Contexts returns the options of every NewContext call.
func (d *Driver) Contexts() []browser.ContextOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]browser.ContextOptions(nil), d.contexts...)
}

// Closed returns the resources closed so far, in order: "page",
// "context" or "browser".
func (d *Driver) Closed() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.closed...)
}

func (d *Driver) recordClose(what string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = append(d.closed, what)
}

// Browser is the fake browser.Browser.
type Browser struct {
	driver *Driver
}

func (b *Browser) NewContext(opts browser.ContextOptions) (browser.Context, error) {
	d := b.driver
	d.mu.Lock()
	d.contexts = append(d.contexts, opts)
	err := d.ContextErr
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &Context{driver: d}, nil
}

func (b *Browser) Close() error {
	b.driver.recordClose("browser")
	return b.driver.BrowserCloseErr
}

// Context is the fake browser.Context.
type Context struct {
	driver *Driver
}

func (c *Context) NewPage() (browser.Page, error) {
	if c.driver.PageErr != nil {
		return nil, c.driver.PageErr
	}
	if c.driver.Page == nil {
		c.driver.Page = &Page{}
	}
	c.driver.Page.driver = c.driver
	return c.driver.Page, nil
}

func (c *Context) Close() error {
	c.driver.recordClose("context")
	return c.driver.ContextCloseErr
}

// Page is a fake browser.Page recording every call. The *Func hooks
// override the default behaviour, which is to succeed.
type Page struct {
	GotoFunc     func(url string, waitUntil browser.WaitUntil) error
	ClickFunc    func(selector string, timeout time.Duration) error
	FillFunc     func(selector, value string) error
	TypeFunc     func(selector, value string, delay time.Duration) error
	EvaluateFunc func(script string) (interface{}, error)
	CloseErr     error

	driver *Driver

	mu             sync.Mutex
	calls          []Call
	defaultTimeout time.Duration
}

// ErrNoElement is a convenient error for selectors that match nothing.
var ErrNoElement = errors.New("no element matches selector")

func (p *Page) record(method string, args ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{Method: method, Args: args})
}

// Calls returns every recorded call in order.
func (p *Page) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallsTo returns the recorded calls of one method.
func (p *Page) CallsTo(method string) []Call {
	var out []Call
	for _, c := range p.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Scripts returns the argument of every Evaluate call.
func (p *Page) Scripts() []string {
	var out []string
	for _, c := range p.CallsTo("Evaluate") {
		out = append(out, c.Args[0])
	}
	return out
}

// DefaultTimeout returns the last value passed to SetDefaultTimeout.
func (p *Page) DefaultTimeout() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.defaultTimeout
}

func (p *Page) Goto(url string, waitUntil browser.WaitUntil) error {
	p.record("Goto", url, string(waitUntil))
	if p.GotoFunc != nil {
		return p.GotoFunc(url, waitUntil)
	}
	return nil
}

func (p *Page) Click(selector string, timeout time.Duration) error {
	p.record("Click", selector, timeout.String())
	if p.ClickFunc != nil {
		return p.ClickFunc(selector, timeout)
	}
	return nil
}

func (p *Page) Fill(selector, value string) error {
	p.record("Fill", selector, value)
	if p.FillFunc != nil {
		return p.FillFunc(selector, value)
	}
	return nil
}

func (p *Page) Type(selector, value string, delay time.Duration) error {
	p.record("Type", selector, value, delay.String())
	if p.TypeFunc != nil {
		return p.TypeFunc(selector, value, delay)
	}
	return nil
}

func (p *Page) Evaluate(script string) (interface{}, error) {
	p.record("Evaluate", script)
	if p.EvaluateFunc != nil {
		return p.EvaluateFunc(script)
	}
	return nil, nil
}

func (p *Page) SetDefaultTimeout(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.defaultTimeout = d
}

func (p *Page) Close() error {
	if p.driver != nil {
		p.driver.recordClose("page")
	}
	return p.CloseErr
}
