package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/fdtd"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Name = "small"
	cfg.Grid = config.GridConfig{XMin: -1, XMax: 1, Nx: 21, YMin: -1, YMax: 1, Ny: 21}
	cfg.Pulse.Width = 0.3
	cfg.Duration = 0.5
	cfg.Probe = config.ProbeConfig{X: 0.5, Y: 0, FluxAxis: "x", FluxAt: 0.5}
	return cfg
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestMenuCursor(t *testing.T) {
	m := NewInteractiveApp().(model)
	if m.state != stateMenu {
		t.Fatal("expected menu state")
	}

	m, _ = update(t, m, key("up"))
	if m.cursor != 0 {
		t.Errorf("cursor moved above first entry: %d", m.cursor)
	}
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	for i := 0; i < len(m.presets)+3; i++ {
		m, _ = update(t, m, key("down"))
	}
	if m.cursor != len(m.presets)-1 {
		t.Errorf("cursor = %d, want last entry", m.cursor)
	}

	view := m.View()
	for _, name := range m.presets {
		if !strings.Contains(view, name) {
			t.Errorf("menu missing %q", name)
		}
	}
}

func TestMenuEnterStartsPreset(t *testing.T) {
	m := NewInteractiveApp().(model)
	m, cmd := update(t, m, key("enter"))
	if m.state != stateSim {
		t.Fatal("enter should start a run")
	}
	if cmd == nil {
		t.Error("expected tick command")
	}
	if m.selected != m.presets[0] {
		t.Errorf("selected %q, want %q", m.selected, m.presets[0])
	}
	if m.err != nil {
		t.Fatalf("setup: %v", m.err)
	}

	m, _ = update(t, m, key("esc"))
	if m.state != stateMenu || m.running {
		t.Error("esc should return to the menu")
	}
}

func TestSimTicksAdvanceSolver(t *testing.T) {
	m := NewSimApp(smallConfig()).(model)
	if !m.running || m.solver == nil {
		t.Fatalf("run not started: %v", m.err)
	}
	if m.Init() == nil {
		t.Error("Init should schedule a tick")
	}

	m, cmd := update(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should reschedule")
	}
	if m.solver.Steps() != 1 {
		t.Errorf("steps = %d, want 1", m.solver.Steps())
	}
	if len(m.history) != 1 {
		t.Errorf("history = %d entries, want 1", len(m.history))
	}

	m, _ = update(t, m, key("+"))
	m, _ = update(t, m, key("+"))
	if m.speed != 4 {
		t.Errorf("speed = %d, want 4", m.speed)
	}
	m, _ = update(t, m, tickMsg(time.Now()))
	if m.solver.Steps() != 5 {
		t.Errorf("steps = %d, want 5", m.solver.Steps())
	}
	m, _ = update(t, m, key("-"))
	if m.speed != 2 {
		t.Errorf("speed = %d, want 2", m.speed)
	}
}

func TestSimPauseAndSingleStep(t *testing.T) {
	m := NewSimApp(smallConfig()).(model)

	m, _ = update(t, m, key(" "))
	if !m.paused {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, tickMsg(time.Now()))
	if m.solver.Steps() != 0 {
		t.Errorf("paused run advanced to step %d", m.solver.Steps())
	}
	m, _ = update(t, m, key("n"))
	if m.solver.Steps() != 1 {
		t.Errorf("n should step once, steps = %d", m.solver.Steps())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show PAUSED")
	}

	m, _ = update(t, m, key("r"))
	if m.paused || m.solver.Steps() != 0 {
		t.Error("r should restart unpaused from step 0")
	}
}

func TestSimPausesAtDuration(t *testing.T) {
	cfg := smallConfig()
	cfg.Duration = 0.05
	m := NewSimApp(cfg).(model)
	m.speed = 64
	m, _ = update(t, m, tickMsg(time.Now()))

	if !m.paused {
		t.Error("run should pause once the duration is reached")
	}
	if m.solver.Time() > cfg.Duration+m.dt {
		t.Errorf("time %g overshoots duration %g", m.solver.Time(), cfg.Duration)
	}
}

func TestSimSetupError(t *testing.T) {
	cfg := smallConfig()
	cfg.Grid.Nx = 1
	m := NewSimApp(cfg).(model)
	if m.err == nil || m.running {
		t.Fatal("expected setup error")
	}
	if !strings.Contains(m.View(), "error") {
		t.Error("view should report the error")
	}
	m, cmd := update(t, m, tickMsg(time.Now()))
	if cmd != nil {
		t.Error("stopped run should not tick")
	}
}

func TestQuitAndResize(t *testing.T) {
	m := NewInteractiveApp().(model)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}

	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestThemeCycle(t *testing.T) {
	m := NewSimApp(smallConfig()).(model)
	before := m.theme.Name
	m, _ = update(t, m, key("t"))
	if m.theme.Name == before {
		t.Error("t should switch theme")
	}
}

func TestLiveRenderer(t *testing.T) {
	g, err := fdtd.NewGrid([]float64{0, 1, 2, 3}, []float64{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	f := fdtd.NewFields(g)

	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0, 8, 4, 1)
	r.Start()
	r.OnStep(f, 0.1, 0.1)
	r.OnStep(f, 0.2, 0.1)
	r.Stop()

	if r.Frames() != 1 {
		t.Errorf("frames = %d, want 1 within one frame interval", r.Frames())
	}
	out := buf.String()
	if !strings.HasPrefix(out, hideCursor) || !strings.HasSuffix(out, showCursor) {
		t.Error("cursor escapes not balanced")
	}
	if !strings.Contains(out, clearScreen) {
		t.Error("frame should clear the screen")
	}
}
