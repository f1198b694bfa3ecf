package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/netatmo/internal/config"
	"github.com/muurk/netatmo/internal/dashboard"
	"github.com/muurk/netatmo/internal/logging"
	"github.com/muurk/netatmo/internal/netatmo"
	"github.com/muurk/netatmo/internal/ui"
	"github.com/muurk/netatmo/internal/urls"
)

var watchInterval int

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntVar(&watchInterval, "interval", 0, "Refresh interval in seconds (default from config, 300)")
}

// showCmd prints the current readings
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current station readings",
	Long: `Authenticate, fetch the station data and print the main station, the
outdoor module (NAModule1) and the first additional indoor module (NAModule4).

Detailed output on a terminal is drawn as panels; when redirected the plain
text layout is used.`,
	Example: `  # Readings with credentials from ./.env
  netatmo-weather show

  # One line per device
  netatmo-weather show --format compact

  # JSON for scripting
  netatmo-weather show --format json | jq .outside.data.Temperature`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	svc, err := newWeatherService()
	if err != nil {
		return err
	}

	snap, err := svc.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	rememberStation(snap)

	printer := ui.NewPrinter(cmd.OutOrStdout())
	return printer.PrintSnapshot(snap, registry.DisplayName(snap.Master.ID, ""), format())
}

// rememberStation records the station in the config file, if one exists
func rememberStation(snap *netatmo.StationSnapshot) {
	path, err := registryPath()
	if err != nil {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	registry.RecordStationSeen(snap.Master.ID, snap.Master.Name)
	if err := registry.SaveTo(path); err != nil {
		logging.Warn("Failed to update config file", zap.String("path", path), zap.Error(err))
	}
}

// userCmd prints the account preferences
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the account and its unit preferences",
	Long: `Print the account mail address and its administrative preferences.
Unit codes are resolved to labels (e.g. windunit 4 is "knot").
Works for stations without an outdoor or additional indoor module.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newWeatherService()
		if err != nil {
			return err
		}

		user, err := svc.User(cmd.Context())
		if err != nil {
			return err
		}

		printer := ui.NewPrinter(cmd.OutOrStdout())
		if format() == config.FormatJSON {
			return printer.PrintJSON(user)
		}
		printer.Print(user.Format())
		return nil
	},
}

// tokenCmd checks the credentials
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Authenticate and show the granted scope and expiry",
	Long: `Perform the password grant and report what was granted. Token values
are masked. Useful to check credentials before running other commands.

See ` + urls.AuthenticationGuide + ` for the available scopes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newWeatherService()
		if err != nil {
			return err
		}

		state, err := svc.Tokens().Authenticate(cmd.Context())
		if err != nil {
			return err
		}

		printer := ui.NewPrinter(cmd.OutOrStdout())
		if format() == config.FormatJSON {
			return printer.PrintJSON(map[string]any{
				"scope":      state.Scope,
				"expires_at": state.ExpiresAt,
			})
		}

		printer.PrintSuccess("Authenticated",
			ui.Detail{Key: "Access token", Value: maskToken(state.AccessToken)},
			ui.Detail{Key: "Refresh token", Value: maskToken(state.RefreshToken)},
			ui.Detail{Key: "Scope", Value: netatmo.JoinScope(state.Scope)},
			ui.Detail{Key: "Expires", Value: fmt.Sprintf("%s (in %s)",
				state.ExpiresAt.Local().Format("2006-01-02 15:04:05"),
				time.Until(state.ExpiresAt).Round(time.Second))},
		)
		return nil
	},
}

// maskToken keeps the first characters of a token for recognition
func maskToken(token string) string {
	const visible = 6
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return token[:visible] + strings.Repeat("*", 8)
}

// watchCmd runs the live dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard that refreshes periodically",
	Long: `Open a full-screen dashboard that refreshes the readings every
refresh_interval_seconds (config file, default 300).

Keys: r refresh now, ? help, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newWeatherService()
		if err != nil {
			return err
		}

		interval := registry.Preferences.RefreshInterval()
		if watchInterval > 0 {
			interval = time.Duration(watchInterval) * time.Second
		}

		return dashboard.Run(svc, dashboard.Options{
			Interval:    interval,
			Timeout:     requestTimeout() * 3,
			DisplayName: registry.DisplayName,
			Context:     cmd.Context(),
		})
	},
}
