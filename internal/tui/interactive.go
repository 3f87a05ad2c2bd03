package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/experiment"
	"github.com/san-kum/fdtd2d/internal/fdtd"
	"github.com/san-kum/fdtd2d/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var presetInfo = map[string]string{
	"band-x":           "plane pulse along x",
	"band-y":           "plane pulse along y",
	"gaussian":         "point pulse, reflecting walls",
	"pml":              "point pulse into absorbing layer",
	"reflecting":       "point pulse, no absorber",
	"conductive-panel": "lossy slab transmission",
	"chiral-panel":     "coupled slab transmission",
}

type state int

const (
	stateMenu state = iota
	stateSim
)

const historyLen = 60

type model struct {
	state    state
	cursor   int
	presets  []string
	selected string

	cfg     *config.Config
	exp     *experiment.Experiment
	solver  *fdtd.Solver
	dt      float64
	total   float64
	err     error
	running bool
	paused  bool
	speed   int
	theme   viz.Theme
	history []float64

	lastFrame time.Time
	fps       float64

	width  int
	height int
}

// NewInteractiveApp starts at the preset menu.
func NewInteractiveApp() tea.Model {
	return model{
		state:   stateMenu,
		presets: config.ListPresets(),
		speed:   1,
		theme:   viz.CurrentTheme,
		history: make([]float64, 0, historyLen),
		width:   80,
		height:  24,
	}
}

// NewSimApp skips the menu and runs cfg directly.
func NewSimApp(cfg *config.Config) tea.Model {
	m := NewInteractiveApp().(model)
	m.selected = cfg.Name
	m = m.start(cfg)
	return m
}

func (m model) Init() tea.Cmd {
	if m.state == stateSim && m.running {
		return tick()
	}
	return nil
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateSim || !m.running {
			return m, nil
		}
		if !m.paused {
			now := time.Now()
			if !m.lastFrame.IsZero() {
				if d := now.Sub(m.lastFrame).Seconds(); d > 0 {
					m.fps = 1.0 / d
				}
			}
			m.lastFrame = now
			for i := 0; i < m.speed; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m = m.start(config.GetPreset(m.selected))
		return m, tick()
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.state = stateMenu
		m.running = false
	case " ":
		m.paused = !m.paused
	case "r":
		m = m.start(m.cfg)
		return m, tick()
	case "t":
		m.theme = viz.NextTheme(m.theme)
	case "+", "=":
		if m.speed < 64 {
			m.speed *= 2
		}
	case "-":
		if m.speed > 1 {
			m.speed /= 2
		}
	case "n":
		if m.paused {
			m.step()
		}
	}
	return m, nil
}

// start builds a fresh experiment for cfg.
func (m model) start(cfg *config.Config) model {
	m.state = stateSim
	m.cfg = cfg
	m.err = nil
	m.paused = false
	m.history = m.history[:0]
	m.lastFrame = time.Time{}

	m.exp = experiment.New(cfg)
	if err := m.exp.Setup(); err != nil {
		m.err = err
		m.running = false
		m.solver = nil
		return m
	}
	m.solver = m.exp.Solver()
	m.dt = m.exp.TimeStep()
	m.total = cfg.Duration
	m.running = true
	return m
}

func (m *model) step() {
	if m.solver == nil {
		return
	}
	if m.solver.Time() >= m.total-m.dt*1e-9 {
		m.paused = true
		return
	}
	if err := m.solver.Step(m.dt); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.history = append(m.history, m.solver.Energy())
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m model) View() string {
	switch m.state {
	case stateSim:
		return m.simView()
	default:
		return m.menuView()
	}
}

func (m model) menuView() string {
	var sb strings.Builder
	sb.WriteString(cyan.Render("fdtd2d") + dim.Render("  select a scenario") + "\n\n")
	for i, name := range m.presets {
		cursor := "  "
		label := white.Render(name)
		if i == m.cursor {
			cursor = cyan.Render("> ")
			label = cyan.Render(name)
		}
		sb.WriteString(fmt.Sprintf("%s%-18s %s\n", cursor, label, dim.Render(presetInfo[name])))
	}
	sb.WriteString("\n" + viz.KeyHint.Render("↑/↓ select · enter run · q quit"))
	return sb.String()
}

func (m model) simView() string {
	var sb strings.Builder
	sb.WriteString(cyan.Render(m.selected) + "  ")
	switch {
	case m.err != nil:
		sb.WriteString(red.Render("error: " + m.err.Error()))
		sb.WriteString("\n\n" + viz.KeyHint.Render("esc menu · q quit"))
		return sb.String()
	case len(m.solver.Warnings()) > 0:
		sb.WriteString(viz.StatusUnstable.Render("UNSTABLE"))
	case m.paused:
		sb.WriteString(viz.StatusPaused.Render("PAUSED"))
	default:
		sb.WriteString(viz.StatusRunning.Render("RUNNING"))
	}
	sb.WriteString("\n\n")

	w := max(10, m.width-4)
	h := max(5, m.height-10)
	field := m.solver.Snapshot()
	scale := m.cfg.Pulse.Amplitude
	sb.WriteString(viz.Panel.Render(viz.Heatmap(field, w-4, h, scale, m.theme)))
	sb.WriteString("\n")

	progress := 0.0
	if m.total > 0 {
		progress = m.solver.Time() / m.total
	}
	sb.WriteString(fmt.Sprintf("%s %s  %s  %s  %s\n",
		viz.ProgressBar(progress, 20),
		green.Render(fmt.Sprintf("t=%.3f", m.solver.Time())),
		viz.Metric("step", float64(m.solver.Steps())),
		viz.Metric("peak", m.solver.Peak()),
		viz.Metric("energy", m.solver.Energy()),
	))
	sb.WriteString(yellow.Render(viz.Sparkline(m.history, historyLen)))
	sb.WriteString(dim.Render(fmt.Sprintf("  x%d  %.0f fps  theme %s", m.speed, m.fps, m.theme.Name)) + "\n")
	sb.WriteString(viz.KeyHint.Render("space pause · n step · +/- speed · r restart · t theme · esc menu · q quit"))
	return sb.String()
}
