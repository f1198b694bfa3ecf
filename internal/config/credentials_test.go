package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muurk/netatmo/internal/netatmo"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvClientID, EnvClientSecret, EnvUsername, EnvPassword, EnvScope} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadCredentials_FromEnvFile(t *testing.T) {
	clearCredentialEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"NETATMO_CLIENT_ID=file-id",
		"NETATMO_CLIENT_SECRET=file-secret",
		"NETATMO_USERNAME=user@example.com",
		"NETATMO_PASSWORD=hunter2",
		`NETATMO_SCOPE="read_station read_thermostat"`,
	}, "\n")
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	creds, err := LoadCredentials(envFile)
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}

	if creds.ClientID != "file-id" || creds.ClientSecret != "file-secret" {
		t.Errorf("client = %s/%s, want values from file", creds.ClientID, creds.ClientSecret)
	}
	if creds.Username != "user@example.com" || creds.Password != "hunter2" {
		t.Errorf("account = %s, want values from file", creds.Username)
	}
	if len(creds.Scope) != 2 || creds.Scope[1] != "read_thermostat" {
		t.Errorf("Scope = %v, want [read_station read_thermostat]", creds.Scope)
	}
}

func TestLoadCredentials_EnvironmentWins(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv(EnvClientID, "env-id")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "NETATMO_CLIENT_ID=file-id\nNETATMO_CLIENT_SECRET=s\nNETATMO_USERNAME=u\nNETATMO_PASSWORD=p\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	creds, err := LoadCredentials(envFile)
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if creds.ClientID != "env-id" {
		t.Errorf("ClientID = %s, want the environment value", creds.ClientID)
	}
}

func TestLoadCredentials_MissingFileIsFine(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv(EnvClientID, "id")
	t.Setenv(EnvClientSecret, "secret")
	t.Setenv(EnvUsername, "u")
	t.Setenv(EnvPassword, "p")

	creds, err := LoadCredentials(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if creds.Scope != nil {
		t.Errorf("Scope = %v, want nil so the library default applies", creds.Scope)
	}
}

func TestLoadCredentials_NamesEveryMissingVariable(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv(EnvClientID, "id")

	_, err := LoadCredentials("")
	if !netatmo.IsConfigError(err) {
		t.Fatalf("error should be config error, got %v", err)
	}

	for _, name := range []string{EnvClientSecret, EnvUsername, EnvPassword} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error = %v, should name %s", err, name)
		}
	}
	if strings.Contains(err.Error(), EnvClientID) {
		t.Errorf("error = %v, should not name the variable that is set", err)
	}
}
