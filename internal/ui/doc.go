// Package ui provides terminal output components for the netatmo-weather CLI.
//
// Components are rendered with Lipgloss and follow a "print once" pattern;
// the interactive view lives in the dashboard package.
//
//   - Header: banner with station name and account parameters
//   - Panel: bordered box with one device's readings
//   - Result: success/failure boxes, failures carry troubleshooting tips
//
// Printer chooses between styled and plain output depending on whether the
// destination is a terminal, so piping `netatmo-weather show` into a file
// yields the plain text formatters of the netatmo package.
//
// # Logging Integration
//
// Logging is controlled via NETATMO_LOG_LEVEL and goes to stderr, so it never
// interleaves with the rendered output on stdout.
package ui
