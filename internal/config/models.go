package config

import (
	"fmt"
	"time"
)

// Output formats accepted by Preferences.OutputFormat
const (
	FormatDetailed = "detailed"
	FormatCompact  = "compact"
	FormatJSON     = "json"
)

// Registry represents the entire user configuration file.
// It stores client preferences and per-station metadata, never credentials.
type Registry struct {
	Version     int                     `yaml:"version" json:"version"`
	Preferences *Preferences            `yaml:"preferences,omitempty" json:"preferences,omitempty"`
	Stations    map[string]*StationMeta `yaml:"stations,omitempty" json:"stations,omitempty"` // Keyed by station MAC address
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	BaseURL                string   `yaml:"base_url" json:"base_url"`                                 // Netatmo API host
	TimeoutSeconds         int      `yaml:"timeout_seconds" json:"timeout_seconds"`                   // Per-request timeout
	Scope                  []string `yaml:"scope,omitempty" json:"scope,omitempty"`                   // OAuth scope, empty means the library default
	OutputFormat           string   `yaml:"output_format" json:"output_format"`                       // detailed | compact | json
	RefreshIntervalSeconds int      `yaml:"refresh_interval_seconds" json:"refresh_interval_seconds"` // Dashboard refresh period
	LogLevel               string   `yaml:"log_level,omitempty" json:"log_level,omitempty"`           // debug | info | warn | error, empty for silent
}

// StationMeta is user-defined metadata for one weather station.
type StationMeta struct {
	Nickname string    `yaml:"nickname,omitempty" json:"nickname,omitempty"`
	LastName string    `yaml:"last_name,omitempty" json:"last_name,omitempty"` // Module name last reported by the API
	LastSeen time.Time `yaml:"last_seen,omitempty" json:"last_seen,omitempty"`
}

// DefaultPreferences returns the preferences used when no file exists
func DefaultPreferences() *Preferences {
	return &Preferences{
		BaseURL:                "https://api.netatmo.com/",
		TimeoutSeconds:         10,
		OutputFormat:           FormatDetailed,
		RefreshIntervalSeconds: 300,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Preferences: DefaultPreferences(),
		Stations:    make(map[string]*StationMeta),
	}
}

// Timeout returns the request timeout as a duration
func (p *Preferences) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// RefreshInterval returns the dashboard refresh period as a duration
func (p *Preferences) RefreshInterval() time.Duration {
	return time.Duration(p.RefreshIntervalSeconds) * time.Second
}

// Validate checks preference values
func (p *Preferences) Validate() error {
	if p.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if p.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", p.TimeoutSeconds)
	}
	if p.RefreshIntervalSeconds < 10 {
		return fmt.Errorf("refresh_interval_seconds must be at least 10, got %d", p.RefreshIntervalSeconds)
	}
	switch p.OutputFormat {
	case FormatDetailed, FormatCompact, FormatJSON:
	default:
		return fmt.Errorf("unknown output_format %q (want detailed, compact or json)", p.OutputFormat)
	}
	return nil
}

// GetStation retrieves station metadata by id.
// Returns nil if the station is not in the registry.
func (r *Registry) GetStation(id string) *StationMeta {
	return r.Stations[id]
}

// EnsureStation returns the entry for id, creating it if needed.
func (r *Registry) EnsureStation(id string) *StationMeta {
	if r.Stations == nil {
		r.Stations = make(map[string]*StationMeta)
	}

	if station, exists := r.Stations[id]; exists {
		return station
	}

	station := &StationMeta{}
	r.Stations[id] = station
	return station
}

// RecordStationSeen updates the last seen timestamp and reported name for a station.
func (r *Registry) RecordStationSeen(id, name string) {
	station := r.EnsureStation(id)
	station.LastSeen = time.Now()
	station.LastName = name
}

// SetStationNickname sets a user-friendly nickname for a station.
func (r *Registry) SetStationNickname(id, nickname string) {
	r.EnsureStation(id).Nickname = nickname
}

// DisplayName returns the nickname of station id, or fallback when none is set
func (r *Registry) DisplayName(id, fallback string) string {
	if station := r.GetStation(id); station != nil && station.Nickname != "" {
		return station.Nickname
	}
	return fallback
}
