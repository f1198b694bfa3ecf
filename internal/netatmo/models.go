package netatmo

import (
	"encoding/json"
	"fmt"
	"time"
)

// ModuleType is the device type tag reported by the API
type ModuleType string

const (
	ModuleMain    ModuleType = "NAMain"    // Indoor base station
	ModuleOutdoor ModuleType = "NAModule1" // Outdoor module
	ModuleWind    ModuleType = "NAModule2" // Wind gauge
	ModuleRain    ModuleType = "NAModule3" // Rain gauge
	ModuleIndoor  ModuleType = "NAModule4" // Additional indoor module
)

// Description returns a human-readable name for the module type
func (t ModuleType) Description() string {
	switch t {
	case ModuleMain:
		return "Base station"
	case ModuleOutdoor:
		return "Outdoor module"
	case ModuleWind:
		return "Wind gauge"
	case ModuleRain:
		return "Rain gauge"
	case ModuleIndoor:
		return "Additional indoor module"
	default:
		return string(t)
	}
}

// Dashboard is the latest reading set of a device: an opaque mapping of metric
// name (e.g. "Temperature", "Humidity", "time_utc") to value.
type Dashboard map[string]any

// Float returns a numeric reading
func (d Dashboard) Float(name string) (float64, bool) {
	switch v := d[name].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Int returns a numeric reading truncated to an integer
func (d Dashboard) Int(name string) (int64, bool) {
	f, ok := d.Float(name)
	return int64(f), ok
}

// String returns a string reading (e.g. "temp_trend")
func (d Dashboard) String(name string) (string, bool) {
	s, ok := d[name].(string)
	return s, ok
}

// Time returns a unix-seconds reading (e.g. "time_utc") as UTC time
func (d Dashboard) Time(name string) (time.Time, bool) {
	sec, ok := d.Int(name)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(sec, 0).UTC(), true
}

// Format renders a reading for display, or "-" when it is missing
func (d Dashboard) Format(name string) string {
	v, ok := d[name]
	if !ok || v == nil {
		return "-"
	}
	if f, isNum := d.Float(name); isNum {
		return fmt.Sprintf("%g", f)
	}
	return fmt.Sprintf("%v", v)
}

// Station is the primary weather station device
type Station struct {
	ID          string     `json:"id"`
	Type        ModuleType `json:"type"`
	Name        string     `json:"name"`
	StationName string     `json:"station_name,omitempty"`
	Reachable   bool       `json:"reachable"`
	Dashboard   Dashboard  `json:"data"`
}

// Module is one sensor paired with the station
type Module struct {
	ID             string     `json:"id"`
	Type           ModuleType `json:"type"`
	Name           string     `json:"name"`
	Reachable      bool       `json:"reachable"`
	BatteryPercent int        `json:"battery_percent"`
	Dashboard      Dashboard  `json:"data"`
}

// User is the account owner with unit preferences resolved to labels.
//
// Administrative holds every administrative key: unit categories carry their
// label, all other keys their raw value. Unit, WindUnit and PressureUnit mirror
// the labelled categories and are empty when the account does not report them.
type User struct {
	Mail           string         `json:"mail"`
	Unit           string         `json:"unit,omitempty"`
	WindUnit       string         `json:"windunit,omitempty"`
	PressureUnit   string         `json:"pressureunit,omitempty"`
	Administrative map[string]any `json:"administrative"`
}

// Preference returns an administrative value by key
func (u User) Preference(key string) (any, bool) {
	v, ok := u.Administrative[key]
	return v, ok
}

// StationSnapshot is the normalized result of one station-data fetch. It is
// rebuilt from scratch on every fetch.
type StationSnapshot struct {
	User      User     `json:"user"`
	Master    Station  `json:"master"`
	Outside   Module   `json:"outside"`
	Secondary Module   `json:"secondary"`
	Modules   []Module `json:"modules"` // every module of the primary station, in API order
}

// FindModule returns the first module of the given type
func FindModule(modules []Module, moduleType ModuleType) (Module, bool) {
	for _, m := range modules {
		if m.Type == moduleType {
			return m, true
		}
	}
	return Module{}, false
}
