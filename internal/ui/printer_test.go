package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/muurk/netatmo/internal/config"
	"github.com/muurk/netatmo/internal/netatmo"
)

func testSnapshot() *netatmo.StationSnapshot {
	return &netatmo.StationSnapshot{
		User: netatmo.User{Mail: "someone@example.com", Unit: "metric", WindUnit: "kph", PressureUnit: "mbar"},
		Master: netatmo.Station{
			ID:          "70:ee:50:00:00:01",
			Type:        netatmo.ModuleMain,
			Name:        "Living Room",
			StationName: "Home",
			Reachable:   true,
			Dashboard:   netatmo.Dashboard{"Temperature": 21.5, "CO2": float64(612)},
		},
		Outside: netatmo.Module{
			ID: "02:00:00:00:00:01", Type: netatmo.ModuleOutdoor, Name: "Garden",
			Reachable: true, BatteryPercent: 80,
			Dashboard: netatmo.Dashboard{"Temperature": 7.25},
		},
		Secondary: netatmo.Module{
			ID: "03:00:00:00:00:01", Type: netatmo.ModuleIndoor, Name: "Bedroom",
			Reachable: false, BatteryPercent: 12,
			Dashboard: netatmo.Dashboard{"Humidity": float64(48)},
		},
		Modules: []netatmo.Module{
			{ID: "02:00:00:00:00:01", Type: netatmo.ModuleOutdoor, Name: "Garden"},
			{ID: "05:00:00:00:00:01", Type: netatmo.ModuleWind, Name: "Wind"},
			{ID: "03:00:00:00:00:01", Type: netatmo.ModuleIndoor, Name: "Bedroom"},
		},
	}
}

func plainPrinter(buf *bytes.Buffer) *Printer {
	return NewPrinter(buf).SetStyled(false).SetWidth(100)
}

func TestNewPrinter_NonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	if p.styled {
		t.Error("printer writing to a buffer should not be styled")
	}
}

func TestPrinter_SetWidthClamps(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{})

	if got := p.SetWidth(10).Width(); got != MinTerminalWidth {
		t.Errorf("SetWidth(10) = %d, want %d", got, MinTerminalWidth)
	}
	if got := p.SetWidth(500).Width(); got != MaxContentWidth {
		t.Errorf("SetWidth(500) = %d, want %d", got, MaxContentWidth)
	}
}

func TestPrinter_PrintSuccessPlain(t *testing.T) {
	var buf bytes.Buffer
	plainPrinter(&buf).PrintSuccess("Authenticated",
		Detail{Key: "Scope", Value: "read_station"},
		Detail{Key: "Expires", Value: "soon"},
	)

	want := "Authenticated\n" +
		"  Scope:         read_station\n" +
		"  Expires:       soon\n"
	if buf.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrinter_PrintErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	err := netatmo.NewAuthError("authenticate", "invalid_grant", 400)
	plainPrinter(&buf).PrintError("netatmo-weather show", err)

	out := buf.String()
	if !strings.HasPrefix(out, "netatmo-weather show: ") {
		t.Errorf("output should start with the title, got %q", out)
	}
	if !strings.Contains(out, "invalid_grant") {
		t.Errorf("output should contain the error message, got %q", out)
	}
	for _, tip := range netatmo.TroubleshootingHint(err) {
		if !strings.Contains(out, "  - "+tip) {
			t.Errorf("output missing tip %q", tip)
		}
	}
}

func TestPrinter_PrintSnapshotFormats(t *testing.T) {
	snap := testSnapshot()

	t.Run("compact", func(t *testing.T) {
		var buf bytes.Buffer
		if err := plainPrinter(&buf).PrintSnapshot(snap, "", config.FormatCompact); err != nil {
			t.Fatal(err)
		}
		if buf.String() != snap.FormatCompact() {
			t.Errorf("compact output differs from FormatCompact:\n%s", buf.String())
		}
	})

	t.Run("detailed plain", func(t *testing.T) {
		var buf bytes.Buffer
		if err := plainPrinter(&buf).PrintSnapshot(snap, "Cottage", config.FormatDetailed); err != nil {
			t.Fatal(err)
		}
		if buf.String() != snap.FormatDetailed() {
			t.Errorf("plain detailed output differs from FormatDetailed:\n%s", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := plainPrinter(&buf).PrintSnapshot(snap, "", config.FormatJSON); err != nil {
			t.Fatal(err)
		}

		var decoded struct {
			Master  struct{ Name string }
			Outside struct {
				Name string
				Data map[string]any `json:"data"`
			}
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
		}
		if decoded.Master.Name != "Living Room" || decoded.Outside.Name != "Garden" {
			t.Errorf("decoded = %+v", decoded)
		}
		if decoded.Outside.Data["Temperature"] != 7.25 {
			t.Errorf("outside temperature = %v, want 7.25", decoded.Outside.Data["Temperature"])
		}
	})
}

func TestPrinter_StyledSnapshotUsesPanels(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetStyled(true).SetWidth(120)
	if err := p.PrintSnapshot(testSnapshot(), "Cottage", config.FormatDetailed); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"COTTAGE", "Garden", "Bedroom"} {
		if !strings.Contains(out, want) {
			t.Errorf("styled output missing %q", want)
		}
	}
}
