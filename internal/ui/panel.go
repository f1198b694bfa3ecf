package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/netatmo/internal/netatmo"
)

// lowBatteryPercent is the level below which a module battery is flagged
const lowBatteryPercent = 20

// metric is one reading shown in a panel
type metric struct {
	key    string // dashboard key
	label  string
	suffix string
}

var panelMetrics = []metric{
	{"Temperature", "Temp", "°"},
	{"Humidity", "Humidity", "%"},
	{"CO2", "CO2", " ppm"},
	{"Noise", "Noise", " dB"},
	{"Pressure", "Pressure", ""},
	{"WindStrength", "Wind", ""},
	{"GustStrength", "Gust", ""},
	{"Rain", "Rain", " mm"},
	{"min_temp", "Min", "°"},
	{"max_temp", "Max", "°"},
	{"temp_trend", "Trend", ""},
}

// Panel is a bordered box showing one device's readings
type Panel struct {
	Title     string
	Subtitle  string
	Dashboard netatmo.Dashboard
	Status    string // pre-styled status line, may be empty
	Accent    lipgloss.Color
}

// StationPanel builds the panel for the primary station
func StationPanel(s netatmo.Station, title string) Panel {
	return Panel{
		Title:     title,
		Subtitle:  s.Type.Description(),
		Dashboard: s.Dashboard,
		Status:    reachability(s.Reachable),
		Accent:    PrimaryColor,
	}
}

// ModulePanel builds the panel for a paired module
func ModulePanel(m netatmo.Module, accent lipgloss.Color) Panel {
	status := reachability(m.Reachable)
	battery := fmt.Sprintf("battery %d%%", m.BatteryPercent)
	if m.BatteryPercent < lowBatteryPercent {
		battery = StatusWarnStyle.Render(battery)
	}

	return Panel{
		Title:     m.Name,
		Subtitle:  m.Type.Description(),
		Dashboard: m.Dashboard,
		Status:    status + "  " + battery,
		Accent:    accent,
	}
}

func reachability(reachable bool) string {
	if reachable {
		return StatusOKStyle.Render(OnlineMarker + " online")
	}
	return StatusWarnStyle.Render(OfflineMarker + " offline")
}

// Render returns the styled panel
func (p Panel) Render() string {
	lines := []string{
		PanelTitleStyle.Render(p.Title),
		PanelSubtitleStyle.Render(p.Subtitle),
		"",
	}

	for _, m := range panelMetrics {
		if _, ok := p.Dashboard[m.key]; !ok {
			continue
		}
		value := p.Dashboard.Format(m.key)
		lines = append(lines, MetricKeyStyle.Render(m.label)+MetricValueStyle.Render(value+m.suffix))
	}

	if t, ok := p.Dashboard.Time("time_utc"); ok {
		lines = append(lines, "", PanelSubtitleStyle.Render("measured "+t.Local().Format("15:04")))
	}
	if p.Status != "" {
		lines = append(lines, p.Status)
	}

	return PanelStyle(p.Accent).Render(strings.Join(lines, "\n"))
}

// RenderSnapshot renders a snapshot as a header plus one panel per selected
// device. Panels sit side by side when width allows, stacked otherwise.
// stationName overrides the station's reported name (e.g. a nickname).
func RenderSnapshot(snap *netatmo.StationSnapshot, stationName string, width int) string {
	if stationName == "" {
		stationName = snap.Master.Name
	}

	subtitle := snap.Master.StationName
	if subtitle == "" {
		subtitle = snap.Master.ID
	}

	header := NewHeader(stationName, subtitle,
		Detail{"Account", snap.User.Mail},
		Detail{"Units", unitsSummary(snap.User)},
	).SetWidth(width).Render()

	panels := []string{
		StationPanel(snap.Master, "Inside").Render(),
		ModulePanel(snap.Outside, ColdColor).Render(),
		ModulePanel(snap.Secondary, PrimaryColor).Render(),
	}

	var body string
	if width >= PanelWidth*len(panels) {
		body = lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, panels...)
	}

	sections := []string{header, body}
	if extra := snap.OtherModules(); len(extra) > 0 {
		var lines []string
		for _, m := range extra {
			lines = append(lines, fmt.Sprintf("  %s %s (%s)", reachability(m.Reachable), m.Name, m.Type.Description()))
		}
		sections = append(sections, HeaderCommandStyle.Render("Other modules:")+"\n"+strings.Join(lines, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func unitsSummary(u netatmo.User) string {
	var parts []string
	for _, v := range []string{u.Unit, u.WindUnit, u.PressureUnit} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " · ")
}
