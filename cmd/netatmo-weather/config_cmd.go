package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/netatmo/internal/config"
	"github.com/muurk/netatmo/internal/logging"
	"github.com/muurk/netatmo/internal/ui"
)

var forceInit bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configNicknameCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
}

// configCmd groups the config file commands. They skip the root setup so a
// broken file can still be located and replaced.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Create, locate and inspect the configuration file.

The file holds client preferences (API host, timeout, scope, output format,
dashboard refresh interval, log level) and station nicknames. Credentials are
never written to it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		commandTitle = cmd.CommandPath()
		return logging.Initialize(logLevel)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := registryPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			confirmed := ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Replace configuration", []string{
				"A configuration file already exists at " + path,
				"Preferences and station nicknames will be reset to defaults",
			})
			if !confirmed {
				return nil
			}
		}

		if err := config.NewRegistry().SaveTo(path); err != nil {
			return err
		}

		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration written",
			ui.Detail{Key: "Path", Value: path},
		)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := registryPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults are applied. Without a file the
defaults are shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		if outputFormat == config.FormatJSON {
			return ui.NewPrinter(cmd.OutOrStdout()).PrintJSON(reg)
		}

		data, err := yaml.Marshal(reg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configNicknameCmd = &cobra.Command{
	Use:   "nickname <station-id> <name>",
	Short: "Set the display name of a station",
	Long: `Set the name shown for a station instead of its module name. The
station id is the MAC address of the main module, as printed by
'netatmo-weather show --format json'. An empty name removes the nickname.`,
	Example: `  netatmo-weather config nickname 70:ee:50:00:00:01 "Home"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := registryPath()
		if err != nil {
			return err
		}

		reg, err := config.LoadRegistryFrom(path)
		if err != nil {
			return err
		}

		reg.SetStationNickname(args[0], args[1])
		if err := reg.SaveTo(path); err != nil {
			return err
		}

		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Nickname saved",
			ui.Detail{Key: "Station", Value: args[0]},
			ui.Detail{Key: "Nickname", Value: args[1]},
		)
		return nil
	},
}

func loadRegistry() (*config.Registry, error) {
	path, err := registryPath()
	if err != nil {
		return nil, err
	}
	return config.LoadRegistryFrom(path)
}
