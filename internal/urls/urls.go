package urls

import "github.com/muurk/netatmo/internal/netatmo"

// Netatmo developer documentation referenced from CLI hints and help text.

// DeveloperApps is where client ids and secrets are created and managed.
const DeveloperApps = "https://dev.netatmo.com/apps/"

// AuthenticationGuide documents the OAuth flows, token lifetime and scopes.
const AuthenticationGuide = "https://dev.netatmo.com/apidocumentation/oauth"

// WeatherAPI documents getstationsdata and the weather module types.
const WeatherAPI = "https://dev.netatmo.com/apidocumentation/weather"

// GeneralErrors lists the numeric error codes returned in API error bodies.
const GeneralErrors = "https://dev.netatmo.com/apidocumentation/general"

// ForError returns the page most relevant to err, or "" when none applies
func ForError(err error) string {
	switch {
	case netatmo.IsAuthError(err), netatmo.IsConfigError(err):
		return DeveloperApps
	case netatmo.IsDataError(err):
		return WeatherAPI
	case netatmo.IsHTTPError(err):
		return GeneralErrors
	default:
		return ""
	}
}
