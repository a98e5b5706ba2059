package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/entrhq/autodemo/pkg/executor"
)

// envPrefix namespaces environment overrides, e.g. AUTODEMO_SPEED or
// AUTODEMO_RECORDING_OUTPUT_DIR.
const envPrefix = "AUTODEMO"

func newRootCmd(newDriver driverFactory) *cobra.Command {
	var cfgFile string
	v := viper.New()

	root := &cobra.Command{
		Use:           "autodemo",
		Short:         "Play scripted browser walkthroughs from YAML scenarios.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(v, cfgFile)
		},
	}
	root.SetVersionTemplate(`{{printf "autodemo version %s\n" .Version}}`)
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./autodemo.yaml)")

	root.AddCommand(
		newRunCmd(v, newDriver),
		newListCmd(),
		newValidateCmd(),
	)
	return root
}

// initializeConfig layers defaults, the optional config file and
// AUTODEMO_* environment variables. Flags bound by subcommands take
// precedence over all three.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	setDefaults(v, executor.DefaultConfig())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("autodemo")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// setDefaults registers every configuration key so that environment
// variables are visible to Unmarshal.
func setDefaults(v *viper.Viper, c *executor.Config) {
	v.SetDefault("headless", c.Headless)
	v.SetDefault("browser", c.Browser)
	v.SetDefault("viewport", c.Viewport)
	v.SetDefault("locale", c.Locale)
	v.SetDefault("timezone", c.Timezone)
	v.SetDefault("speed", c.Speed)
	v.SetDefault("observation_delay", c.ObservationDelay)

	v.SetDefault("recording.enabled", c.Recording.Enabled)
	v.SetDefault("recording.output_dir", c.Recording.OutputDir)

	v.SetDefault("preflight.enabled", c.Preflight.Enabled)
	v.SetDefault("preflight.timeout", c.Preflight.Timeout)

	v.SetDefault("artifacts.enabled", c.Artifacts.Enabled)
	v.SetDefault("artifacts.output_dir", c.Artifacts.OutputDir)
	v.SetDefault("artifacts.json", c.Artifacts.JSON)
	v.SetDefault("artifacts.markdown", c.Artifacts.Markdown)

	v.SetDefault("logging.verbosity", c.Logging.Verbosity)
}

// loadConfig decodes the layered configuration.
func loadConfig(v *viper.Viper) (*executor.Config, error) {
	config := executor.DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return config, nil
}
