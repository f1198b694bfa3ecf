package urls

import (
	"errors"
	"testing"

	"github.com/muurk/netatmo/internal/netatmo"
)

func TestForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", netatmo.NewAuthError(netatmo.PathToken, "rejected", 400), DeveloperApps},
		{"config", netatmo.NewConfigError("missing"), DeveloperApps},
		{"module", netatmo.NewModuleNotFoundError(netatmo.ModuleOutdoor), WeatherAPI},
		{"http", netatmo.NewHTTPError(netatmo.PathStationsData, 500, "x"), GeneralErrors},
		{"plain", errors.New("x"), ""},
	}

	for _, tt := range tests {
		if got := ForError(tt.err); got != tt.want {
			t.Errorf("%s: ForError() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
