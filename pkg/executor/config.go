package executor

import (
	"fmt"
	"time"

	"github.com/entrhq/autodemo/pkg/actions"
	"github.com/entrhq/autodemo/pkg/browser"
	"github.com/entrhq/autodemo/pkg/scenario"
)

// Config represents the configuration of a demo run
type Config struct {
	// Headless hides the browser window. Headed runs add an observation
	// delay after the last step.
	Headless bool   `yaml:"headless" json:"headless" mapstructure:"headless"`
	Browser  string `yaml:"browser" json:"browser" mapstructure:"browser"`
	// Viewport is a preset name: big, small or empty for the default.
	Viewport string `yaml:"viewport" json:"viewport" mapstructure:"viewport"`
	Locale   string `yaml:"locale" json:"locale" mapstructure:"locale"`
	Timezone string `yaml:"timezone" json:"timezone" mapstructure:"timezone"`
	// Speed scales the scenario pacing: slow, normal or fast.
	Speed string `yaml:"speed" json:"speed" mapstructure:"speed"`

	ObservationDelay time.Duration `yaml:"observation_delay" json:"observation_delay" mapstructure:"observation_delay"`

	Recording RecordingConfig `yaml:"recording" json:"recording" mapstructure:"recording"`
	Preflight PreflightConfig `yaml:"preflight" json:"preflight" mapstructure:"preflight"`
	Artifacts ArtifactConfig  `yaml:"artifacts" json:"artifacts" mapstructure:"artifacts"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging" mapstructure:"logging"`

	// Timing overrides handler delays. It is not read from config files.
	Timing actions.Timing `yaml:"-" json:"-" mapstructure:"-"`
}

// RecordingConfig defines video capture
type RecordingConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	OutputDir string `yaml:"output_dir" json:"output_dir" mapstructure:"output_dir"`
}

// PreflightConfig defines the server reachability check run before launch
type PreflightConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
}

// ArtifactConfig defines artifact generation configuration
type ArtifactConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	OutputDir string `yaml:"output_dir" json:"output_dir" mapstructure:"output_dir"`

	// Individual format flags
	JSON     bool `yaml:"json" json:"json" mapstructure:"json"`
	Markdown bool `yaml:"markdown" json:"markdown" mapstructure:"markdown"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Verbosity controls console output: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity" json:"verbosity" mapstructure:"verbosity"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := scenario.ParseSpeed(c.Speed); err != nil {
		return err
	}

	switch c.Browser {
	case "", "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("invalid browser: %s (must be 'chromium', 'firefox' or 'webkit')", c.Browser)
	}

	switch c.Viewport {
	case "", browser.ViewportBig, browser.ViewportSmall:
	default:
		return fmt.Errorf("invalid viewport: %s (must be '%s' or '%s')", c.Viewport, browser.ViewportBig, browser.ViewportSmall)
	}

	if c.ObservationDelay < 0 {
		return fmt.Errorf("observation_delay cannot be negative")
	}

	if c.Preflight.Timeout < 0 {
		return fmt.Errorf("preflight timeout cannot be negative")
	}

	if c.Recording.Enabled && c.Recording.OutputDir == "" {
		return fmt.Errorf("recording requires an output directory")
	}

	if c.Artifacts.Enabled && c.Artifacts.OutputDir == "" {
		return fmt.Errorf("artifacts require an output directory")
	}

	// Set default verbosity if not specified
	if c.Logging.Verbosity == "" {
		c.Logging.Verbosity = "normal"
	}

	validLevels := map[string]bool{
		"quiet":   true,
		"normal":  true,
		"verbose": true,
		"debug":   true,
	}
	if !validLevels[c.Logging.Verbosity] {
		return fmt.Errorf("invalid logging verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", c.Logging.Verbosity)
	}

	return nil
}

// DefaultConfig returns a default configuration suitable for most use cases
func DefaultConfig() *Config {
	return &Config{
		Headless:         true,
		Browser:          "chromium",
		Locale:           browser.DefaultLocale,
		Timezone:         browser.DefaultTimezone,
		Speed:            string(scenario.SpeedNormal),
		ObservationDelay: 2 * time.Second,
		Recording: RecordingConfig{
			Enabled:   false,
			OutputDir: browser.DefaultRecordingsDir,
		},
		Preflight: PreflightConfig{
			Enabled: true,
			Timeout: 2 * time.Second,
		},
		Artifacts: ArtifactConfig{
			Enabled:   false,
			OutputDir: ".autodemo/artifacts",
			JSON:      true,
			Markdown:  true,
		},
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
		Timing: actions.DefaultTiming(),
	}
}
