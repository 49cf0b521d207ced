package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/hazard"
	"github.com/vovakirdan/danmaku/internal/scenario"
	"github.com/vovakirdan/danmaku/internal/storage"
)

func testScenario() (*scenario.Scenario, error) {
	sc := scenario.New("test", "Test")
	sc.AddArena(1200, 800, 40)
	sc.Player.Pos = geom.V(0, 200)
	bullet := hazard.DefaultTemplate()
	sc.Templates["bullet"] = bullet
	sc.Emitters = []scenario.Emitter{{Name: "bullet", Template: bullet, Ring: 4, Every: 10}}
	return sc, nil
}

func newTestModel(t *testing.T, store *storage.Store, load Loader) Model {
	t.Helper()
	if load == nil {
		load = testScenario
	}
	m, err := NewModel(Options{
		Load:    load,
		Store:   store,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Sim:     config.DefaultSimConfig(),
	})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		m, _ = send(m, TickMsg(time.Now()))
	}
	return m
}

func TestPauseAndStep(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = tick(m, 3)
	if got := m.Sim().Tick(); got != 3 {
		t.Fatalf("Tick() = %d, expected 3", got)
	}

	m, _ = send(m, runes("."))
	if got := m.Sim().Tick(); got != 3 {
		t.Errorf("step while running advanced to %d", got)
	}

	m, _ = send(m, runes("p"))
	m = tick(m, 5)
	if !m.Paused() || m.Sim().Tick() != 3 {
		t.Errorf("paused=%v tick=%d, expected paused at 3", m.Paused(), m.Sim().Tick())
	}

	m, _ = send(m, runes("."))
	if got := m.Sim().Tick(); got != 4 {
		t.Errorf("Tick() after step = %d, expected 4", got)
	}
}

func TestSpeed(t *testing.T) {
	m := newTestModel(t, nil, nil)
	tests := []struct {
		key      string
		expected int
	}{
		{"+", 2}, {"+", 4}, {"+", 8}, {"+", 16}, {"+", 16},
		{"-", 8}, {"-", 4}, {"-", 2}, {"-", 1}, {"-", 1},
	}
	for i, tc := range tests {
		m, _ = send(m, runes(tc.key))
		if m.Speed() != tc.expected {
			t.Errorf("step %d: Speed() = %d, expected %d", i, m.Speed(), tc.expected)
		}
	}

	m, _ = send(m, runes("+"))
	m = tick(m, 3)
	if got := m.Sim().Tick(); got != 6 {
		t.Errorf("Tick() = %d, expected 6 at double speed", got)
	}
}

func TestNudgePlayer(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	want := geom.V(-nudgeStep, 200-nudgeStep)
	if got := m.Sim().Player().Position(); got != want {
		t.Errorf("Position() = %v, expected %v", got, want)
	}
}

func TestRunSaved(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := newTestModel(t, store, nil)
	m = tick(m, 20)

	m, _ = send(m, runes("r"))
	if m.Sim().Tick() != 0 {
		t.Errorf("Tick() after restart = %d, expected 0", m.Sim().Tick())
	}
	m = tick(m, 5)

	m, cmd := send(m, runes("q"))
	if cmd == nil || !m.IsQuitting() {
		t.Error("q should quit")
	}
	m.saveRun()

	runs, err := store.AllRuns("test")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("AllRuns() = %d runs, expected 2", len(runs))
	}
	if runs[0].Ticks != 20 || runs[1].Ticks != 5 {
		t.Errorf("run ticks = %d, %d, expected 20, 5", runs[0].Ticks, runs[1].Ticks)
	}
	if runs[0].Seed != 1 {
		t.Errorf("Seed = %d, expected 1", runs[0].Seed)
	}
}

func TestBack(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m, cmd := send(m, runes("b"))
	if cmd == nil || !m.IsQuitting() {
		t.Error("back should quit a standalone viewer")
	}

	m = newTestModel(t, nil, nil)
	m.embedded = true
	m, _ = send(m, runes("b"))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("back inside a session should return to the menu")
	}
}

func TestReload(t *testing.T) {
	broken := false
	load := func() (*scenario.Scenario, error) {
		if broken {
			return nil, errors.New("bad yaml")
		}
		return testScenario()
	}
	m := newTestModel(t, nil, load)
	m = tick(m, 12)
	live := m.Sim().Pool().Len()

	m, _ = send(m, FileChangedMsg{Path: "/tmp/stage.yaml"})
	if !strings.Contains(m.Status(), "reloaded stage.yaml") {
		t.Errorf("Status() = %q", m.Status())
	}
	if m.Sim().Tick() != 12 || m.Sim().Pool().Len() != live {
		t.Error("reload should keep the running simulation")
	}

	broken = true
	m, _ = send(m, runes("R"))
	if !strings.Contains(m.Status(), "bad yaml") {
		t.Errorf("Status() = %q, expected the load error", m.Status())
	}
	if m.Sim().Tick() != 12 {
		t.Error("a failed reload must not touch the simulation")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = tick(m, 2)
	out := m.View()
	if !strings.Contains(out, "@") {
		t.Error("View() does not draw the player")
	}
	if !strings.Contains(out, "Test") {
		t.Error("View() does not draw the status line")
	}
	if !strings.Contains(out, "running x1") {
		t.Error("View() does not draw the footer")
	}
	if strings.Contains(out, "PAUSED") {
		t.Error("View() draws the pause banner while running")
	}

	m, _ = send(m, runes("p"))
	if out := m.View(); !strings.Contains(out, "PAUSED") || !strings.Contains(out, "┌") {
		t.Error("View() does not draw the pause banner")
	}
}
