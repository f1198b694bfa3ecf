package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	}

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if filepath.Base(configDir) != "netatmo" {
		t.Errorf("GetConfigDir() = %v, should end with 'netatmo'", configDir)
	}

	if runtime.GOOS == "linux" && configDir != filepath.Join("/tmp/xdg", "netatmo") {
		t.Errorf("GetConfigDir() = %v, should honor XDG_CONFIG_HOME", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Stations == nil {
		t.Error("NewRegistry().Stations should not be nil")
	}

	p := reg.Preferences
	if p.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %v, want 10", p.TimeoutSeconds)
	}
	if p.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", p.Timeout())
	}
	if p.RefreshInterval() != 5*time.Minute {
		t.Errorf("RefreshInterval() = %v, want 5m", p.RefreshInterval())
	}
	if p.OutputFormat != FormatDetailed {
		t.Errorf("OutputFormat = %v, want detailed", p.OutputFormat)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default preferences should validate, got %v", err)
	}
}

func TestPreferencesValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Preferences)
	}{
		{"empty base url", func(p *Preferences) { p.BaseURL = "" }},
		{"zero timeout", func(p *Preferences) { p.TimeoutSeconds = 0 }},
		{"short refresh", func(p *Preferences) { p.RefreshIntervalSeconds = 1 }},
		{"unknown format", func(p *Preferences) { p.OutputFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPreferences()
			tt.modify(p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestRegistryEnsureStation(t *testing.T) {
	reg := NewRegistry()

	s1 := reg.EnsureStation("70:ee:50:00:00:01")
	if s1 == nil {
		t.Fatal("EnsureStation() returned nil")
	}

	if s2 := reg.EnsureStation("70:ee:50:00:00:01"); s1 != s2 {
		t.Error("EnsureStation() should return same instance for same id")
	}

	if s3 := reg.EnsureStation("70:ee:50:00:00:02"); s1 == s3 {
		t.Error("EnsureStation() should create new instance for different id")
	}
}

func TestRegistryRecordStationSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.RecordStationSeen("70:ee:50:00:00:01", "Living room")
	after := time.Now()

	station := reg.GetStation("70:ee:50:00:00:01")
	if station == nil {
		t.Fatal("Station should exist after RecordStationSeen()")
	}
	if station.LastName != "Living room" {
		t.Errorf("LastName = %v, want Living room", station.LastName)
	}
	if station.LastSeen.Before(before) || station.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", station.LastSeen, before, after)
	}
}

func TestRegistryDisplayName(t *testing.T) {
	reg := NewRegistry()

	if got := reg.DisplayName("x", "Living room"); got != "Living room" {
		t.Errorf("DisplayName() = %v, want fallback", got)
	}

	reg.SetStationNickname("x", "Home")
	if got := reg.DisplayName("x", "Living room"); got != "Home" {
		t.Errorf("DisplayName() = %v, want Home", got)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	reg := NewRegistry()
	reg.Preferences.OutputFormat = FormatCompact
	reg.Preferences.Scope = []string{"read_station"}
	reg.SetStationNickname("70:ee:50:00:00:01", "Home")

	if err := reg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file should exist: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "# Netatmo Weather Configuration File") {
		t.Error("saved file should start with the header comment")
	}

	loaded, err := LoadRegistryFrom(path)
	if err != nil {
		t.Fatalf("LoadRegistryFrom() error = %v", err)
	}
	if loaded.Preferences.OutputFormat != FormatCompact {
		t.Errorf("OutputFormat = %v, want compact", loaded.Preferences.OutputFormat)
	}
	if len(loaded.Preferences.Scope) != 1 || loaded.Preferences.Scope[0] != "read_station" {
		t.Errorf("Scope = %v, want [read_station]", loaded.Preferences.Scope)
	}
	if loaded.DisplayName("70:ee:50:00:00:01", "") != "Home" {
		t.Error("station nickname should survive a save/load round trip")
	}
}

func TestLoadRegistryFrom_Missing(t *testing.T) {
	reg, err := LoadRegistryFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistryFrom() error = %v", err)
	}
	if reg.Version != 1 || reg.Preferences == nil {
		t.Error("a missing file should yield the default registry")
	}
}

func TestLoadRegistryFrom_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\npreferences:\n  output_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistryFrom(path)
	if err != nil {
		t.Fatalf("LoadRegistryFrom() error = %v", err)
	}
	if reg.Preferences.OutputFormat != FormatJSON {
		t.Errorf("OutputFormat = %v, want json", reg.Preferences.OutputFormat)
	}
	if reg.Preferences.TimeoutSeconds != 10 || reg.Preferences.RefreshIntervalSeconds != 300 {
		t.Error("omitted preferences should take their defaults")
	}
}

func TestLoadRegistryFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown version", "version: 2\n", "unsupported config version"},
		{"bad yaml", "version: [1\n", "failed to parse"},
		{"bad format", "version: 1\npreferences:\n  output_format: xml\n", "output_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := LoadRegistryFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadRegistryFrom() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
