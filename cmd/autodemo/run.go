package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/entrhq/autodemo/pkg/executor"
	"github.com/entrhq/autodemo/pkg/logging"
	"github.com/entrhq/autodemo/pkg/scenario"
)

const defaultScenario = "scenarios/demo.yaml"

type runFlags struct {
	headed      bool
	noPreflight bool
}

func newRunCmd(v *viper.Viper, newDriver driverFactory) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Play a scenario in a browser",
		Long: `Play a scenario in a browser.

The scenario defaults to ` + defaultScenario + `. Click the toggle drawn on the
page to pause and resume the run between steps.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultScenario
			if len(args) == 1 {
				path = args[0]
			}

			config, err := loadConfig(v)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("headed") {
				config.Headless = !flags.headed
			}
			if cmd.Flags().Changed("no-preflight") {
				config.Preflight.Enabled = !flags.noPreflight
			}

			return runScenario(cmd, path, config, newDriver)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.headed, "headed", false, "show the browser window")
	f.BoolVar(&flags.noPreflight, "no-preflight", false, "skip the server reachability check")
	f.Bool("record", false, "record a video of the run")
	f.String("viewport", "", "viewport preset: big (1920x1080) or small (1280x720)")
	f.String("speed", "", "pacing profile: slow, normal or fast")
	f.String("recordings", "", "directory for recorded videos")
	f.Bool("artifacts", false, "write run.json and summary.md")
	f.String("verbosity", "", "console verbosity: quiet, normal, verbose or debug")
	f.String("locale", "", "browser locale")
	f.String("timezone", "", "browser timezone")

	bindings := map[string]string{
		"recording.enabled":    "record",
		"viewport":             "viewport",
		"speed":                "speed",
		"recording.output_dir": "recordings",
		"artifacts.enabled":    "artifacts",
		"logging.verbosity":    "verbosity",
		"locale":               "locale",
		"timezone":             "timezone",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, f.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	return cmd
}

func runScenario(cmd *cobra.Command, path string, config *executor.Config, newDriver driverFactory) error {
	console := executor.NewLoggerTo(executor.ParseLogLevel(config.Logging.Verbosity), cmd.OutOrStdout())
	debug := console.Level() >= executor.LogLevelDebug

	diag, err := logging.NewLogger("autodemo")
	if err != nil {
		console.Warningf("File logging unavailable: %v", err)
	}
	defer diag.Close()
	if debug {
		diag.SetTee(cmd.ErrOrStderr(), logging.LevelDebug)
	}
	if diag.LogPath() != "" {
		console.Verbosef("Diagnostic log: %s", diag.LogPath())
	}

	var driverOut io.Writer = io.Discard
	if debug {
		driverOut = cmd.ErrOrStderr()
	}

	runner, err := executor.NewRunner(path, newDriver(config.Browser, driverOut), config,
		executor.WithConsole(console),
		executor.WithDiagnostics(diag),
	)
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, scenario.ErrNotFound) {
			printAvailable(cmd.OutOrStdout(), filepath.Dir(path))
			return errRunFailed
		}
		if executor.IsStartupError(err) {
			return errRunFailed
		}
		return err
	}
	if !result.Success {
		return errRunFailed
	}
	return nil
}

// printAvailable lists the scenarios next to a missing scenario file.
func printAvailable(w io.Writer, dir string) {
	paths, err := scenario.Discover(dir, scenario.DefaultPattern)
	if err != nil || len(paths) == 0 {
		fmt.Fprintf(w, "No scenarios found in %s\n", dir)
		return
	}
	fmt.Fprintf(w, "Available scenarios in %s:\n", dir)
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
