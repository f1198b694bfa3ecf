package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/netatmo/internal/netatmo"
)

type fakeSource struct {
	calls    int
	snapshot *netatmo.StationSnapshot
	err      error
}

func (f *fakeSource) Snapshot(ctx context.Context) (*netatmo.StationSnapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

func testSnapshot() *netatmo.StationSnapshot {
	return &netatmo.StationSnapshot{
		User:      netatmo.User{Mail: "user@example.com", Unit: "metric"},
		Master:    netatmo.Station{ID: "m", Type: netatmo.ModuleMain, Name: "Living room", Dashboard: netatmo.Dashboard{"Temperature": 21.4}},
		Outside:   netatmo.Module{Type: netatmo.ModuleOutdoor, Name: "Garden", Dashboard: netatmo.Dashboard{"Temperature": 9.8}},
		Secondary: netatmo.Module{Type: netatmo.ModuleIndoor, Name: "Bedroom", Dashboard: netatmo.Dashboard{}},
	}
}

func keyPress(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// fetchNow runs the fetch command directly, skipping the spinner tick
func fetchNow(t *testing.T, m Model) tea.Msg {
	t.Helper()
	msg := m.fetchCmd()()
	if _, ok := msg.(snapshotMsg); !ok {
		t.Fatalf("fetch command returned %T, want snapshotMsg", msg)
	}
	return msg
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return model, cmd
}

func TestNew_StartsFetching(t *testing.T) {
	m := New(&fakeSource{}, Options{})

	if !m.Fetching {
		t.Error("new dashboard should be fetching")
	}
	if m.options.Interval != 5*time.Minute {
		t.Errorf("default interval = %v, want 5m", m.options.Interval)
	}
	if m.Init() == nil {
		t.Error("Init() should start the first fetch")
	}
}

func TestUpdate_SnapshotReceived(t *testing.T) {
	src := &fakeSource{snapshot: testSnapshot()}
	m := New(src, Options{Interval: time.Minute})

	m, cmd := update(t, m, fetchNow(t, m))

	if m.Fetching {
		t.Error("Fetching should be false after the snapshot arrives")
	}
	if m.Snapshot == nil || m.Snapshot.Outside.Name != "Garden" {
		t.Error("snapshot should be stored")
	}
	if cmd == nil {
		t.Error("next refresh should be scheduled")
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}

	view := m.View()
	if !strings.Contains(view, "Garden") || !strings.Contains(view, "updated") {
		t.Errorf("View() should show the snapshot and update time:\n%s", view)
	}
}

func TestUpdate_FailedRefreshKeepsSnapshot(t *testing.T) {
	src := &fakeSource{snapshot: testSnapshot()}
	m := New(src, Options{})
	m, _ = update(t, m, fetchNow(t, m))

	src.snapshot, src.err = nil, netatmo.NewAuthError(netatmo.PathToken, "token refresh rejected", 403)
	m, _ = update(t, m, keyPress("r"))
	m, _ = update(t, m, fetchNow(t, m))

	if m.Snapshot == nil {
		t.Fatal("previous snapshot should be kept on failure")
	}
	if !netatmo.IsAuthError(m.LastErr) {
		t.Errorf("LastErr = %v, want auth error", m.LastErr)
	}
	if !strings.Contains(m.View(), "Refresh failed") {
		t.Error("View() should show the failure box")
	}

	src.snapshot, src.err = testSnapshot(), nil
	m, _ = update(t, m, keyPress("r"))
	m, _ = update(t, m, fetchNow(t, m))
	if m.LastErr != nil {
		t.Errorf("LastErr = %v, want nil after a successful refresh", m.LastErr)
	}
}

func TestUpdate_RefreshIgnoredWhileFetching(t *testing.T) {
	m := New(&fakeSource{}, Options{})

	m, cmd := update(t, m, keyPress("r"))
	if cmd != nil {
		t.Error("refresh should not start a second fetch while one is in flight")
	}
	if m.gen != 1 {
		t.Errorf("gen = %d, want 1", m.gen)
	}
}

func TestUpdate_ManualRefresh(t *testing.T) {
	src := &fakeSource{snapshot: testSnapshot()}
	m := New(src, Options{})
	m, _ = update(t, m, fetchNow(t, m))

	m, cmd := update(t, m, keyPress("r"))
	if !m.Fetching || cmd == nil {
		t.Fatal("refresh should start a fetch when idle")
	}
	if m.gen != 2 {
		t.Errorf("gen = %d, want 2", m.gen)
	}
}

func TestUpdate_StaleTickDropped(t *testing.T) {
	src := &fakeSource{snapshot: testSnapshot()}
	m := New(src, Options{})
	m, _ = update(t, m, fetchNow(t, m))

	m, cmd := update(t, m, tickMsg{gen: 0})
	if cmd != nil || m.Fetching {
		t.Error("a tick from an earlier fetch should be ignored")
	}

	m, cmd = update(t, m, tickMsg{gen: m.gen})
	if cmd == nil || !m.Fetching {
		t.Error("a current tick should start a fetch")
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := New(&fakeSource{}, Options{})

	_, cmd := update(t, m, keyPress("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := New(&fakeSource{}, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	if m.Width != 200 || m.Height != 50 {
		t.Errorf("size = %dx%d, want 200x50", m.Width, m.Height)
	}
	if m.contentWidth() != 120 {
		t.Errorf("contentWidth() = %d, want capped width", m.contentWidth())
	}
}

func TestFetchCmd_PassesError(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	m := New(src, Options{})

	msg := fetchNow(t, m).(snapshotMsg)
	if msg.err == nil || msg.snapshot != nil {
		t.Errorf("snapshotMsg = %+v, want error only", msg)
	}
}

func TestView_UsesDisplayName(t *testing.T) {
	src := &fakeSource{snapshot: testSnapshot()}
	m := New(src, Options{
		DisplayName: func(id, fallback string) string {
			if id == "m" {
				return "Cottage"
			}
			return fallback
		},
	})
	m.Width = 120

	m, _ = update(t, m, fetchNow(t, m))

	if view := m.View(); !strings.Contains(view, "COTTAGE") {
		t.Errorf("View() should use the display name:\n%s", view)
	}
}

type contextSource struct{}

func (contextSource) Snapshot(ctx context.Context) (*netatmo.StationSnapshot, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestFetchCmd_CanceledByParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(contextSource{}, Options{Context: ctx, Timeout: time.Hour})

	msg := fetchNow(t, m).(snapshotMsg)
	if !errors.Is(msg.err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", msg.err)
	}
}

func TestNew_DefaultContext(t *testing.T) {
	m := New(&fakeSource{}, Options{})
	if m.options.Context == nil {
		t.Error("Context should default to context.Background()")
	}
}
