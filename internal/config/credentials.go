package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/muurk/netatmo/internal/logging"
	"github.com/muurk/netatmo/internal/netatmo"
)

// Environment variables holding the client credentials
const (
	EnvClientID     = "NETATMO_CLIENT_ID"
	EnvClientSecret = "NETATMO_CLIENT_SECRET"
	EnvUsername     = "NETATMO_USERNAME"
	EnvPassword     = "NETATMO_PASSWORD"
	EnvScope        = "NETATMO_SCOPE"
)

// LoadCredentials reads the client credentials from the environment after
// loading envFile (if it exists). Variables already set in the environment
// win over the file. NETATMO_SCOPE is optional and space separated.
//
// Every missing required variable is named in the returned config error.
func LoadCredentials(envFile string) (netatmo.Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return netatmo.Credentials{}, netatmo.NewConfigError("failed to load " + envFile + ": " + err.Error())
			}
			logging.Debug("No env file", zap.String("path", envFile))
		}
	}

	creds := netatmo.Credentials{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		Username:     os.Getenv(EnvUsername),
		Password:     os.Getenv(EnvPassword),
		Scope:        netatmo.ParseScope(os.Getenv(EnvScope)),
	}

	if missing := MissingVariables(creds); len(missing) > 0 {
		return creds, netatmo.NewConfigError("missing environment variables: " + strings.Join(missing, ", "))
	}

	return creds, nil
}

// MissingVariables lists the environment variables whose value is absent from creds
func MissingVariables(creds netatmo.Credentials) []string {
	var missing []string
	if creds.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if creds.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if creds.Username == "" {
		missing = append(missing, EnvUsername)
	}
	if creds.Password == "" {
		missing = append(missing, EnvPassword)
	}
	return missing
}
