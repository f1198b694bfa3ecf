package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/netatmo/internal/config"
	"github.com/muurk/netatmo/internal/logging"
	"github.com/muurk/netatmo/internal/netatmo"
	"github.com/muurk/netatmo/internal/version"
)

// newWeatherService builds the client from the credentials and the registry preferences
func newWeatherService() (*netatmo.WeatherService, error) {
	creds, err := config.LoadCredentials(envFile)
	if err != nil {
		if !onlyPasswordMissing(creds) || !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, err
		}
		if creds.Password, err = promptPassword(creds.Username); err != nil {
			return nil, err
		}
	}

	if len(creds.Scope) == 0 {
		creds.Scope = registry.Preferences.Scope
	}

	client := netatmo.NewClientWithURL(registry.Preferences.BaseURL)
	client.SetTimeout(requestTimeout())
	client.UserAgent = version.UserAgent()

	logging.Debug("Weather client ready",
		zap.String("base_url", client.BaseURL),
		zap.Duration("timeout", requestTimeout()))

	return netatmo.NewWeatherService(client, creds), nil
}

func onlyPasswordMissing(creds netatmo.Credentials) bool {
	missing := config.MissingVariables(creds)
	return len(missing) == 1 && missing[0] == config.EnvPassword
}

// promptPassword reads the account password without echo
func promptPassword(username string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(b) == 0 {
		return "", netatmo.NewConfigError("password cannot be empty")
	}
	return string(b), nil
}

// requestTimeout returns the per-request timeout from the flag or the config file
func requestTimeout() time.Duration {
	if timeoutSecs > 0 {
		return time.Duration(timeoutSecs) * time.Second
	}
	return registry.Preferences.Timeout()
}
