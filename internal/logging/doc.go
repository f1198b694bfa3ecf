// Package logging provides structured logging for the Netatmo client.
//
// This package wraps a global zap logger. It is silent by default so that
// library users and CLI output are not polluted; set NETATMO_LOG_LEVEL (or
// pass a level to Initialize) to turn it on.
//
// # Log Levels
//
//   - Debug: outbound requests and response status
//   - Info: token issued / refreshed
//   - Warn: failed requests, 4xx responses
//   - Error: 5xx responses
//
// # Structured Logging
//
//	logging.Info("Snapshot fetched",
//	    zap.String("station", snapshot.Master.ID),
//	    zap.Int("modules", len(snapshot.Modules)),
//	)
//
// # Secrets
//
// Request bodies are never logged. URLs are logged without query string or
// user info, so access tokens, refresh tokens and passwords never reach the log.
//
// # Output Format
//
// Logs are written to stderr in console format; stdout is reserved for
// command output such as JSON snapshots.
package logging
