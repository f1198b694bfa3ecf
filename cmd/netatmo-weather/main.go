// Netatmo-weather reads a Netatmo weather station from the command line.
//
// It authenticates with the password grant, fetches the station data and
// prints the main station, the outdoor module and one additional indoor
// module. Credentials come from NETATMO_* environment variables or a .env file.
//
// Usage:
//
//	netatmo-weather [command] [flags]
//
// Running without arguments is the same as `netatmo-weather show`.
// See 'netatmo-weather --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/muurk/netatmo/internal/config"
	"github.com/muurk/netatmo/internal/logging"
	"github.com/muurk/netatmo/internal/netatmo"
	"github.com/muurk/netatmo/internal/ui"
	"github.com/muurk/netatmo/internal/urls"
	"github.com/muurk/netatmo/internal/version"
)

// Global flags
var (
	envFile      string
	configPath   string
	outputFormat string
	timeoutSecs  int
	logLevel     string
)

// registry is loaded once in PersistentPreRunE
var registry *config.Registry

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError prints library errors as a failure box on stderr
func reportError(err error) {
	var apiErr *netatmo.Error
	if !errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	printer := ui.NewPrinter(os.Stderr)
	printer.PrintError(commandTitle, err)
	if link := urls.ForError(err); link != "" {
		printer.Println("  More information: " + link)
	}
}

// commandTitle names the failed operation in the error box
var commandTitle = "netatmo-weather"

var rootCmd = &cobra.Command{
	Use:   "netatmo-weather",
	Short: "Netatmo weather station client",
	Long: `Read a Netatmo weather station from the command line.

Credentials are read from NETATMO_CLIENT_ID, NETATMO_CLIENT_SECRET,
NETATMO_USERNAME and NETATMO_PASSWORD, or from a .env file.

If no command is specified, the current readings are shown.`,
	Version:       version.Full(),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		commandTitle = cmd.CommandPath()
		return setup()
	},
	RunE: runShow,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File with NETATMO_* variables (optional)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format (detailed, compact, json)")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 0, "Request timeout in seconds (default from config, 10)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logs go to stderr")

	rootCmd.AddCommand(versionCmd)
}

// setup loads the registry and initializes logging.
// Precedence for every setting: flag, config file, environment, default.
func setup() error {
	path, err := registryPath()
	if err != nil {
		return err
	}

	registry, err = config.LoadRegistryFrom(path)
	if err != nil {
		return err
	}

	level := logLevel
	if level == "" {
		level = registry.Preferences.LogLevel
	}
	if err := logging.Initialize(level); err != nil {
		return err
	}

	switch format() {
	case config.FormatDetailed, config.FormatCompact, config.FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want detailed, compact or json)", format())
	}

	return nil
}

func registryPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

// format returns the output format from the flag or the config file
func format() string {
	if outputFormat != "" {
		return outputFormat
	}
	return registry.Preferences.OutputFormat
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("netatmo-weather %s\n", version.Full())
	},
}
