package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/autodemo/pkg/actions"
	"github.com/entrhq/autodemo/pkg/browser"
	"github.com/entrhq/autodemo/pkg/logging"
	"github.com/entrhq/autodemo/pkg/overlay"
	"github.com/entrhq/autodemo/pkg/pause"
	"github.com/entrhq/autodemo/pkg/scenario"
)

// StepExecutor runs one step and reports whether it succeeded.
// *actions.Dispatcher implements it.
type StepExecutor interface {
	Execute(ctx context.Context, step scenario.Step) bool
}

// ExecutorFactory builds the step executor for a session. onFailure
// should be called with the error behind every failed step.
type ExecutorFactory func(env actions.Env, onFailure actions.FailureFunc) StepExecutor

// DefaultExecutorFactory returns an actions.Dispatcher.
func DefaultExecutorFactory(env actions.Env, onFailure actions.FailureFunc) StepExecutor {
	return actions.NewDispatcher(env, actions.WithFailureFunc(onFailure))
}

// Runner executes one scenario file in one browser session.
type Runner struct {
	scenarioPath string
	config       *Config
	driver       browser.Driver

	console     *Logger
	log         *logging.Logger
	newExecutor ExecutorFactory
	artifacts   *ArtifactWriter
}

// Option configures a Runner.
type Option func(*Runner)

// WithConsole sets the operator console logger.
func WithConsole(l *Logger) Option {
	return func(r *Runner) {
		r.console = l
	}
}

// WithDiagnostics sets the diagnostic file logger.
func WithDiagnostics(l *logging.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithExecutorFactory replaces the step executor.
func WithExecutorFactory(f ExecutorFactory) Option {
	return func(r *Runner) {
		r.newExecutor = f
	}
}

// NewRunner creates a runner for the scenario at path.
func NewRunner(path string, driver browser.Driver, config *Config, opts ...Option) (*Runner, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if config.Timing == (actions.Timing{}) {
		config.Timing = actions.DefaultTiming()
	}

	r := &Runner{
		scenarioPath: path,
		config:       config,
		driver:       driver,
		console:      NewLogger(ParseLogLevel(config.Logging.Verbosity)),
		log:          logging.Nop(),
		newExecutor:  DefaultExecutorFactory,
	}
	for _, opt := range opts {
		opt(r)
	}
	if config.Artifacts.Enabled {
		r.artifacts = NewArtifactWriter(config.Artifacts)
	}
	return r, nil
}

// Run loads the scenario, opens the session and executes every step in
// order. The returned error is non-nil only when the run could not start
// (load, preflight or session failure) or ctx was cancelled; a failed
// step is reported through RunResult.Success. The session is closed
// exactly once on every path, before artifacts are written.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		RunID:        uuid.NewString(),
		ScenarioPath: r.scenarioPath,
		StartTime:    time.Now(),
	}
	r.log.Infof("Run %s starting: %s", result.RunID, r.scenarioPath)

	err := r.run(ctx, result)
	if err != nil && result.Error == "" {
		result.Error = err.Error()
	}
	r.finalize(result)
	return result, err
}

func (r *Runner) run(ctx context.Context, result *RunResult) error {
	sc, err := scenario.Load(r.scenarioPath)
	if err != nil {
		r.console.Errorf("Failed to load scenario: %v", err)
		return err
	}
	speed, _ := scenario.ParseSpeed(r.config.Speed)
	sc = sc.WithSpeed(speed)
	result.Scenario = sc.Name

	r.console.Header(fmt.Sprintf("%s (%d steps)", displayName(sc), len(sc.Steps)))
	if sc.Description != "" {
		r.console.Infof("%s", sc.Description)
	}
	r.console.Verbosef("Base URL %s, action delay %s, slow motion %s", sc.BaseURL, sc.Config.ActionDelay, sc.Config.SlowMotion)

	if r.config.Preflight.Enabled {
		if err := CheckServer(ctx, sc.BaseURL, r.config.Preflight.Timeout); err != nil {
			r.console.Errorf("%v", err)
			return err
		}
		r.console.Verbosef("Server %s is reachable", sc.BaseURL)
	}

	session, err := browser.Open(r.driver, browser.Options{
		Headless:      r.config.Headless,
		SlowMotion:    sc.Config.SlowMotion,
		Viewport:      r.config.Viewport,
		Locale:        r.config.Locale,
		Timezone:      r.config.Timezone,
		Record:        r.config.Recording.Enabled,
		RecordingsDir: r.config.Recording.OutputDir,
	}, r.log.Named("session"))
	if err != nil {
		r.console.Errorf("Failed to open browser session: %v", err)
		return err
	}
	defer session.Close()
	result.RecordingDir = session.Recording.Dir

	surface := overlay.New(session.Page(), r.log.Named("overlay"))
	r.log.Try("inject control surface", surface.Inject)

	var lastErr error
	exec := r.newExecutor(actions.Env{
		Page:     session.Page(),
		Scenario: sc,
		Overlay:  surface,
		Log:      r.log.Named("actions"),
		Console:  r.console.Writer(),
		Timing:   r.config.Timing,
	}, func(_ scenario.Step, err error) {
		lastErr = err
	})

	runErr := r.runSteps(ctx, sc, surface, exec, &lastErr, result)

	if runErr == nil && !r.config.Headless && r.config.ObservationDelay > 0 {
		r.console.Verbosef("Keeping the browser open for %s", r.config.ObservationDelay)
		runErr = pause.Delay(ctx, r.config.ObservationDelay)
	}

	session.Close()
	if session.Recording.Active {
		videos, err := session.Videos()
		if err != nil {
			r.log.Warnf("Failed to list recordings: %v", err)
		}
		result.Videos = videos
	}
	return runErr
}

func (r *Runner) runSteps(ctx context.Context, sc *scenario.Scenario, surface actions.Overlay, exec StepExecutor, lastErr *error, result *RunResult) error {
	total := len(sc.Steps)
	poll := r.config.Timing.PollInterval

	for i, step := range sc.Steps {
		if err := pause.Hold(ctx, surface, poll); err != nil {
			r.skipFrom(sc, i, result)
			return err
		}
		r.log.Try("inject control surface", surface.Inject)

		description := step.Description
		if description == "" {
			description = fmt.Sprintf("Step %d", step.Index)
		}
		r.console.Step(i+1, total, description)
		r.log.Infof("[%d/%d] %s (%s)", i+1, total, description, step.Kind())

		*lastErr = nil
		outcome := outcomeFor(step)
		start := time.Now()
		ok := exec.Execute(ctx, step)
		outcome.Duration = time.Since(start)

		if ok {
			outcome.Status = StatusSuccess
			r.console.Verbosef("Completed in %s", outcome.Duration.Round(time.Millisecond))
		} else {
			outcome.Status = StatusFailed
			outcome.Error = "step failed"
			if *lastErr != nil {
				outcome.Error = (*lastErr).Error()
			}
		}
		result.Steps = append(result.Steps, outcome)

		if err := ctx.Err(); err != nil {
			r.skipFrom(sc, i+1, result)
			return err
		}

		if !ok {
			if !step.Optional {
				r.console.Errorf("Failed to execute required step: %s", description)
				result.Error = fmt.Sprintf("required step %d failed: %s", step.Index, outcome.Error)
				r.skipFrom(sc, i+1, result)
				return nil
			}
			r.console.Warningf("Optional step failed, continuing: %s", description)
		}

		if i < total-1 {
			if err := pause.Hold(ctx, surface, poll); err != nil {
				r.skipFrom(sc, i+1, result)
				return err
			}
			if err := pause.Delay(ctx, sc.Config.ActionDelay); err != nil {
				r.skipFrom(sc, i+1, result)
				return err
			}
		}
	}

	result.Success = true
	r.console.Successf("Demo completed successfully")
	return nil
}

func (r *Runner) skipFrom(sc *scenario.Scenario, from int, result *RunResult) {
	for _, step := range sc.Steps[from:] {
		outcome := outcomeFor(step)
		outcome.Status = StatusSkipped
		result.Steps = append(result.Steps, outcome)
	}
}

func (r *Runner) finalize(result *RunResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	if result.Error != "" {
		result.Success = false
	}

	r.log.Infof("Run %s finished: success=%t duration=%s", result.RunID, result.Success, result.Duration)
	r.console.Summary(result)

	if r.artifacts != nil {
		dir, err := r.artifacts.WriteAll(result)
		if err != nil {
			r.console.Warningf("Failed to write artifacts: %v", err)
			return
		}
		r.console.Infof("Artifacts written to %s", dir)
	}
}

func displayName(sc *scenario.Scenario) string {
	if sc.Name != "" {
		return sc.Name
	}
	return "Unnamed scenario"
}

// IsStartupError reports whether err kept the run from executing any step.
func IsStartupError(err error) bool {
	var loadErr *scenario.LoadError
	var sessionErr *browser.SessionError
	return errors.As(err, &loadErr) || errors.As(err, &sessionErr) || errors.Is(err, ErrServerUnreachable)
}
