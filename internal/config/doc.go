// Package config provides client configuration for the Netatmo weather tools.
//
// Two sources are combined:
//   - Credentials are read from NETATMO_* environment variables, optionally
//     loaded from a .env file (LoadCredentials).
//   - Preferences and station nicknames live in a YAML registry file.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/netatmo/config.yaml or $HOME/.config/netatmo/config.yaml
//   - macOS: $HOME/.config/netatmo/config.yaml
//   - Windows: %LOCALAPPDATA%\netatmo\config.yaml
//
// # Security
//
// IMPORTANT: The registry NEVER stores the client secret, the account password
// or OAuth tokens. Tokens only ever exist in memory.
//
// # Usage Example
//
//	creds, err := config.LoadCredentials(".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry.SetStationNickname("70:ee:50:00:00:01", "Home")
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
package config
