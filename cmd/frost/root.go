// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for frost.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/barskern/frost/internal/config"
	"github.com/barskern/frost/internal/diagnose"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Stamped at release time via -ldflags.
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"

	// verbose and cfgFile back the persistent --verbose and --config flags.
	verbose bool
	cfgFile string

	// rootCmd is the bare "frost" invocation; subcommands attach in init.
	rootCmd = &cobra.Command{
		Use:   "frost",
		Short: "Weather station release and sync tooling",
		Long: TitleStyle.Render("frost") + SubtitleStyle.Render(" - Weather station release and sync tooling") + `

frost keeps a personal weather telemetry pipeline running. It syncs
observations from the MET Norway Frost API into a Promscale metric
store, and it builds and publishes the container image that runs the
sync on a schedule.

The image tag is derived from the version declared in the project
metadata file, so releases follow the metadata without manual tagging.

` + SubtitleStyle.Render("Examples:") + `
  frost sync                Sync new observations into the metric store
  frost sync 2021-06-01T00:00:00Z 2021-06-02T00:00:00Z
                            Re-ingest a fixed time window
  frost elements            List observation series for the sensor
  frost build               Build the release image
  frost deploy              Push the release image to the registry
  frost config show         Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/frost/config.toml)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(elementsCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString renders the --version output.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// userAgent identifies this binary to the HTTP APIs it talks to.
func userAgent() string {
	return "frost/" + Version
}

// Execute runs the CLI and exits the process on failure, honoring the exit
// code a command requested through ExitError.
func Execute() {
	// fang renders help, errors and --version; it ignores rootCmd.Version,
	// so the version string has to go through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig loads the dotenv file and the configuration before any
// command runs. Load failures are warnings, not fatal: every command can run
// on defaults plus environment variables.
func initRootConfig() {
	// Credentials commonly live in a .env next to the project; load it before
	// the config layer binds environment variables.
	if err := config.LoadDotenv(config.DotenvFileName); err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// The --verbose flag wins over the config file.
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	configureLogging(verbose)

	if verbose && config.ConfigFilePath() != "" {
		slog.Debug("loaded configuration", "path", config.ConfigFilePath())
	}
}

// configureLogging sets the level of the default logger and routes log/slog
// through it, so library packages logging via slog share the same output.
func configureLogging(verboseMode bool) {
	if verboseMode {
		log.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(log.Default()))
}

// formatErrorForDisplay renders an error for the terminal. Actionable errors
// print their suggestions, and verbose mode adds the cause chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *diagnose.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
