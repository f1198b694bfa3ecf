package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/netatmo/internal/logging"
	"github.com/muurk/netatmo/internal/netatmo"
	"github.com/muurk/netatmo/internal/ui"
)

// SnapshotSource produces station snapshots. *netatmo.WeatherService
// satisfies it. The model never calls Snapshot concurrently.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*netatmo.StationSnapshot, error)
}

// Message types for async operations
type snapshotMsg struct {
	snapshot  *netatmo.StationSnapshot
	err       error
	fetchedAt time.Time
}

// tickMsg triggers a scheduled refresh. gen ties it to the fetch that
// scheduled it so that ticks made stale by a manual refresh are dropped.
type tickMsg struct {
	gen int
}

type keyMap struct {
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.Help, k.Quit},
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Background(ui.PrimaryColor).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor).
			PaddingLeft(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor)
)

// Options configure the dashboard
type Options struct {
	Interval time.Duration // Time between automatic refreshes
	Timeout  time.Duration // Deadline for one snapshot fetch

	// Context is the parent of every fetch; canceling it aborts an in-flight
	// fetch and quits the program. Defaults to context.Background().
	Context context.Context

	// DisplayName maps a station id to its display name (e.g. a nickname),
	// returning fallback when there is none. Optional.
	DisplayName func(stationID, fallback string) string
}

// Model is the live weather dashboard. At most one fetch is in flight.
type Model struct {
	source  SnapshotSource
	options Options

	// Data state
	Snapshot  *netatmo.StationSnapshot // Last successful snapshot, kept across failed refreshes
	LastErr   error                    // Error of the most recent fetch, nil after a success
	LastFetch time.Time
	Fetching  bool
	gen       int // Incremented for every fetch started

	// UI state
	Width  int
	Height int

	Spinner spinner.Model
	Help    help.Model
	Keys    keyMap
}

// New creates a dashboard for source. The first fetch starts in Init.
func New(source SnapshotSource, options Options) Model {
	if options.Interval <= 0 {
		options.Interval = 5 * time.Minute
	}
	if options.Timeout <= 0 {
		options.Timeout = netatmo.DefaultTimeout * 3
	}
	if options.Context == nil {
		options.Context = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	keys := keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	width, height := ui.GetTerminalSize()

	return Model{
		source:   source,
		options:  options,
		Fetching: true,
		gen:      1,
		Width:    width,
		Height:   height,
		Spinner:  s,
		Help:     help.New(),
		Keys:     keys,
	}
}

// Init starts the first fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.fetchCmd())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Refresh):
			return m.startFetch()
		case key.Matches(msg, m.Keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
		}
		return m, nil

	case snapshotMsg:
		m.Fetching = false
		m.LastFetch = msg.fetchedAt
		if msg.err != nil {
			m.LastErr = msg.err
			logging.Warn("Dashboard refresh failed", zap.Error(msg.err))
		} else {
			m.Snapshot = msg.snapshot
			m.LastErr = nil
		}
		return m, m.scheduleTick()

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.startFetch()

	case spinner.TickMsg:
		if !m.Fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// startFetch begins a refresh unless one is already running
func (m Model) startFetch() (tea.Model, tea.Cmd) {
	if m.Fetching {
		return m, nil
	}
	m.Fetching = true
	m.gen++
	return m, tea.Batch(m.Spinner.Tick, m.fetchCmd())
}

func (m Model) fetchCmd() tea.Cmd {
	source, parent, timeout := m.source, m.options.Context, m.options.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		snap, err := source.Snapshot(ctx)
		return snapshotMsg{snapshot: snap, err: err, fetchedAt: time.Now()}
	}
}

func (m Model) scheduleTick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.options.Interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Netatmo Weather"))
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n\n")

	if m.Snapshot != nil {
		b.WriteString(ui.RenderSnapshot(m.Snapshot, m.stationName(), m.contentWidth()))
		b.WriteString("\n")
	}

	if m.LastErr != nil {
		b.WriteString(ui.NewErrorResult("Refresh failed", m.LastErr).SetWidth(m.contentWidth()).Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.Help.View(m.Keys))

	return b.String()
}

func (m Model) status() string {
	if m.Fetching {
		return m.Spinner.View() + " fetching…"
	}
	if m.LastFetch.IsZero() {
		return ""
	}
	next := m.LastFetch.Add(m.options.Interval)
	return fmt.Sprintf("updated %s · next %s", m.LastFetch.Format("15:04:05"), next.Format("15:04:05"))
}

func (m Model) stationName() string {
	if m.options.DisplayName == nil {
		return ""
	}
	return m.options.DisplayName(m.Snapshot.Master.ID, "")
}

func (m Model) contentWidth() int {
	if m.Width > ui.MaxContentWidth {
		return ui.MaxContentWidth
	}
	return m.Width
}

// Run starts the dashboard in the alternate screen and blocks until the user quits
func Run(source SnapshotSource, options Options) error {
	model := New(source, options)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(model.options.Context))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && model.options.Context.Err() != nil {
		return model.options.Context.Err()
	}
	return err
}
