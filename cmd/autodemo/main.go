// Package main provides the autodemo command line tool, which plays
// scripted browser walkthroughs from YAML scenario files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/autodemo/pkg/browser"
)

const version = "0.1.0"

// Process exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// errRunFailed is returned by the run command when the scenario ran but
// did not succeed. The summary has already been printed.
var errRunFailed = errors.New("demo run failed")

// driverFactory builds the browser driver for a run.
type driverFactory func(browserName string, out io.Writer) browser.Driver

func playwrightDriver(browserName string, out io.Writer) browser.Driver {
	return browser.NewPlaywrightDriver(browser.PlaywrightOptions{
		Browser: browserName,
		Output:  out,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr, playwrightDriver)
	stop()
	os.Exit(code)
}

// execute runs the command line and maps the outcome to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, newDriver driverFactory) int {
	root := newRootCmd(newDriver)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		fmt.Fprintln(stderr, "Interrupted")
		return exitInterrupted
	case errors.Is(err, errRunFailed):
		return exitFailure
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}
