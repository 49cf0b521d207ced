package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/scenario"
	"github.com/vovakirdan/danmaku/internal/sim"
	"github.com/vovakirdan/danmaku/internal/storage"
	"github.com/vovakirdan/danmaku/internal/watch"
)

const (
	maxSpeed  = 16   // steps per frame
	nudgeStep = 15.0 // world units per arrow key press
)

// Loader builds a fresh scenario. The viewer calls it on start, restart and
// reload.
type Loader func() (*scenario.Scenario, error)

// Options configures a viewer.
type Options struct {
	Load    Loader
	Store   *storage.Store
	Runtime core.RuntimeConfig
	Sim     config.SimConfig
	Logger  *log.Logger
	// Watcher, when set, triggers a reload whenever a watched file changes.
	Watcher *watch.Watcher
}

// Model is the Bubble Tea model that runs and draws one simulation.
type Model struct {
	opts       Options
	sim        *sim.Sim
	screen     *core.Screen
	keyMapper  *KeyMapper
	config     core.RuntimeConfig
	paused     bool
	speed      int
	status     string
	runSaved   bool
	quitting   bool
	backToMenu bool
	embedded   bool // inside a session that owns the menu
}

// NewModel builds the first scenario and wraps it in a viewer.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		opts:      opts,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keyMapper: NewKeyMapper(),
		config:    cfg,
		speed:     1,
	}
	if err := m.restart(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// restart builds a new simulation from the loader.
func (m *Model) restart() error {
	sc, err := m.opts.Load()
	if err != nil {
		return err
	}
	s, err := sim.New(sc, sim.Options{Config: m.opts.Sim, Seed: m.config.Seed, Logger: m.opts.Logger})
	if err != nil {
		return err
	}
	m.sim = s
	m.runSaved = false
	m.status = ""
	return nil
}

// reload swaps in a freshly built scenario while hazards keep flying. A
// broken file leaves the current scenario running.
func (m *Model) reload(reason string) {
	sc, err := m.opts.Load()
	if err == nil {
		err = m.sim.Reload(sc)
	}
	if err != nil {
		m.opts.Logger.Warn("reload failed", "reason", reason, "error", err)
		m.status = "reload failed: " + err.Error()
		return
	}
	m.status = "reloaded " + reason
}

// Init starts the tick loop and, if configured, the file watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), waitForChange(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case FileChangedMsg:
		m.reload(filepath.Base(msg.Path))
		return m, waitForChange(m.opts.Watcher)

	case WatchErrMsg:
		m.opts.Logger.Warn("watch error", "error", msg.Err)
		return m, waitForChange(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKey(msg) {
	case ActionQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	case ActionBack:
		m.saveRun()
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	case ActionScreenshot:
		m.saveScreenshot()
	case ActionPause:
		m.paused = !m.paused
	case ActionStep:
		if m.paused {
			m.sim.Step()
		}
	case ActionFaster:
		m.speed = core.Min(m.speed*2, maxSpeed)
	case ActionSlower:
		m.speed = core.Max(m.speed/2, 1)
	case ActionRestart:
		m.saveRun()
		if err := m.restart(); err != nil {
			m.status = "restart failed: " + err.Error()
		}
	case ActionReload:
		m.reload("by request")
	case ActionUp:
		m.sim.Nudge(geom.V(0, -nudgeStep))
	case ActionDown:
		m.sim.Nudge(geom.V(0, nudgeStep))
	case ActionLeft:
		m.sim.Nudge(geom.V(-nudgeStep, 0))
	case ActionRight:
		m.sim.Nudge(geom.V(nudgeStep, 0))
	}
	return m, nil
}

// handleTick advances the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		for i := 0; i < m.speed; i++ {
			m.sim.Step()
		}
	}
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the current run once.
func (m *Model) saveRun() {
	if m.runSaved || m.opts.Store == nil || m.sim.Tick() == 0 {
		return
	}
	if _, err := m.opts.Store.SaveStats(m.sim.Stats()); err != nil {
		m.opts.Logger.Warn("could not save run", "error", err)
	}
	m.runSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".danmaku", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%d_%s.txt", m.sim.Scenario().ID, m.sim.Tick(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

// draw renders the simulation and the footer into the screen buffer.
func (m *Model) draw() {
	h := m.screen.Height()
	m.sim.Render(m.screen, m.sim.Camera(m.screen.Width(), h))

	footer := m.status
	if footer == "" {
		state := "running"
		if m.paused {
			state = "paused"
		}
		footer = fmt.Sprintf(" %s x%d | p pause  . step  +/- speed  arrows move  r restart  R reload  b back  q quit", state, m.speed)
	}
	m.screen.DrawTextColor(0, h-1, footer, core.ColorGray)

	if m.paused {
		m.drawPauseBanner()
	}
}

// drawPauseBanner boxes a PAUSED label in the middle of the screen.
func (m *Model) drawPauseBanner() {
	const label = " PAUSED "
	w, h := len(label)+2, 3
	box := core.NewRect((m.screen.Width()-w)/2, (m.screen.Height()-h)/2, w, h)
	m.screen.DrawRect(box, ' ', core.ColorDefault)
	m.screen.DrawBox(box, core.ColorWhite)
	m.screen.DrawTextCentered(box.Y+1, label)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Sim returns the running simulation.
func (m Model) Sim() *sim.Sim {
	return m.sim
}

// Paused reports whether the simulation is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Speed returns the number of steps taken per frame.
func (m Model) Speed() int {
	return m.speed
}

// Status returns the transient footer message, if any.
func (m Model) Status() string {
	return m.status
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the viewer as a full-screen program.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.saveRun()
	}
	return err
}
