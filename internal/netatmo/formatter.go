package netatmo

import (
	"fmt"
	"sort"
	"strings"
)

// Readings shown by the formatters, in display order
var (
	stationMetrics = []string{"Temperature", "Humidity", "CO2", "Noise", "Pressure", "AbsolutePressure"}
	moduleMetrics  = []string{"Temperature", "Humidity", "CO2", "min_temp", "max_temp", "temp_trend"}
)

// Summary returns a one-line summary of the snapshot
func (s *StationSnapshot) Summary() string {
	return fmt.Sprintf("%s: inside %s°, outside %s°, %s %s°",
		s.Master.Name,
		s.Master.Dashboard.Format("Temperature"),
		s.Outside.Dashboard.Format("Temperature"),
		s.Secondary.Name,
		s.Secondary.Dashboard.Format("Temperature"))
}

// FormatUser returns the user preferences section
func (s *StationSnapshot) FormatUser() string {
	return s.User.Format()
}

// Format returns the mail address and the administrative preferences sorted by key
func (u User) Format() string {
	var b strings.Builder

	b.WriteString("=== Account ===\n")
	b.WriteString(fmt.Sprintf("Mail:          %s\n", u.Mail))

	keys := make([]string, 0, len(u.Administrative))
	for k := range u.Administrative {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%-14s %v\n", k+":", u.Administrative[k]))
	}

	return b.String()
}

func formatDevice(title, name string, d Dashboard, metrics []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== %s: %s ===\n", title, name))
	for _, metric := range metrics {
		if _, ok := d[metric]; !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%-17s %s\n", metric+":", d.Format(metric)))
	}
	if t, ok := d.Time("time_utc"); ok {
		b.WriteString(fmt.Sprintf("%-17s %s\n", "Measured:", t.Format("2006-01-02 15:04:05 MST")))
	}

	return b.String()
}

// FormatCompact returns a compact multi-line format suitable for terminal display
func (s *StationSnapshot) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Station:   %s (%s)\n", s.Master.Name, s.User.Mail))
	b.WriteString(fmt.Sprintf("Inside:    %s° %s%%\n", s.Master.Dashboard.Format("Temperature"), s.Master.Dashboard.Format("Humidity")))
	b.WriteString(fmt.Sprintf("Outside:   %s° %s%%\n", s.Outside.Dashboard.Format("Temperature"), s.Outside.Dashboard.Format("Humidity")))
	b.WriteString(fmt.Sprintf("%-10s %s° %s%%\n", s.Secondary.Name+":", s.Secondary.Dashboard.Format("Temperature"), s.Secondary.Dashboard.Format("Humidity")))
	b.WriteString(fmt.Sprintf("Pressure:  %s %s\n", s.Master.Dashboard.Format("Pressure"), s.User.PressureUnit))

	return b.String()
}

// FormatDetailed returns every section of the snapshot
func (s *StationSnapshot) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.FormatUser())
	b.WriteString("\n")
	b.WriteString(formatDevice("Station", s.Master.Name, s.Master.Dashboard, stationMetrics))
	b.WriteString("\n")
	b.WriteString(formatDevice("Outside", s.Outside.Name, s.Outside.Dashboard, moduleMetrics))
	b.WriteString("\n")
	b.WriteString(formatDevice("Secondary", s.Secondary.Name, s.Secondary.Dashboard, moduleMetrics))

	if extra := s.OtherModules(); len(extra) > 0 {
		b.WriteString("\n=== Other modules ===\n")
		for _, m := range extra {
			b.WriteString(fmt.Sprintf("%s (%s, battery %d%%)\n", m.Name, m.Type.Description(), m.BatteryPercent))
		}
	}

	return b.String()
}

// OtherModules lists the modules that are neither the outside nor the secondary slot
func (s *StationSnapshot) OtherModules() []Module {
	var extra []Module
	seenOutside, seenSecondary := false, false
	for _, m := range s.Modules {
		switch {
		case m.Type == ModuleOutdoor && !seenOutside:
			seenOutside = true
		case m.Type == ModuleIndoor && !seenSecondary:
			seenSecondary = true
		default:
			extra = append(extra, m)
		}
	}
	return extra
}
