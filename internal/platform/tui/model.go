package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pingpong/internal/config"
	"github.com/vovakirdan/tui-pingpong/internal/core"
	"github.com/vovakirdan/tui-pingpong/internal/loop"
)

// Game is the contract between the terminal host and a game.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Resize(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// RoundEndFunc is called once for every round that ends.
// It returns a status line to show under the field, or "".
type RoundEndFunc func(state core.GameState) string

// Options configures a Model.
type Options struct {
	Input      config.InputConfig
	TickRate   int           // Simulation steps per second
	FPS        int           // Render frames per second
	Logger     *log.Logger   // Defaults to a discarding logger
	OnRoundEnd RoundEndFunc  // Optional
	Status     string        // Initial status line
	Screenshot string        // Screenshot directory; "" disables ctrl+s
	Now        func() time.Time
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game    Game
	screen  *core.Screen
	opts    Options
	logger  *log.Logger
	runtime core.RuntimeConfig

	stepper *loop.Stepper
	last    time.Time
	input   core.InputFrame
	hold    *keyHold

	keys     KeyMap
	help     help.Model
	showHelp bool
	status   string

	state    core.GameState
	rounds   int
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, runtime core.RuntimeConfig, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = runtime.TickRate
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = runtime.ScreenW

	return Model{
		game:    game,
		screen:  core.NewScreen(runtime.ScreenW, fieldHeight(runtime.ScreenH, false)),
		opts:    opts,
		logger:  logger,
		runtime: runtime,
		stepper: loop.NewStepper(time.Second/time.Duration(opts.TickRate), loop.DefaultMaxSteps),
		input:   core.NewInputFrame(),
		hold:    &keyHold{},
		keys:    DefaultKeyMap(),
		help:    h,
		status:  opts.Status,
	}
}

// Init starts the game and the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.runtime)
	m.logger.Info("round started", "game", m.game.ID())
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case core.ActionLeft, core.ActionRight:
		if m.hold.press(action, m.opts.Now(), m.opts.Input) {
			m.input.Set(action)
		}
	case core.ActionStop:
		m.hold.clear()
		m.input.Set(action)
	case core.ActionRestart:
		if m.state.GameOver {
			m.input.Set(action)
		}
	case core.ActionPause:
		m.input.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The round keeps running:
// the field is in world units and only its on-screen scale changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.game.Resize(m.runtime)
	return m, nil
}

// handleTick feeds elapsed wall time to the stepper and runs every
// simulation step that is due.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if released := m.hold.expire(now); released != core.ActionNone {
		m.input.Set(released)
	}

	var elapsed time.Duration
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	dropped := m.stepper.Dropped()
	steps := m.stepper.Advance(elapsed)
	if n := m.stepper.Dropped() - dropped; n > 0 {
		m.logger.Debug("simulation fell behind", "elapsed", elapsed, "dropped", n)
	}

	for range steps {
		wasOver := m.state.GameOver
		result := m.game.Step(m.input)
		m.input.Clear()
		m.state = result.State

		if wasOver && !m.state.GameOver {
			m.logger.Info("round started", "game", m.game.ID())
			m.status = m.opts.Status
		}
		if result.Ended {
			m.roundEnded()
		}
	}

	return m, tickCmd(m.opts.FPS)
}

func (m *Model) roundEnded() {
	m.rounds++
	m.logger.Info("round over", "game", m.game.ID(), "round", m.rounds, "score", m.state.Score)
	if m.opts.OnRoundEnd != nil {
		m.status = m.opts.OnRoundEnd(m.state)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.opts.Screenshot == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.Screenshot, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := m.opts.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.Screenshot, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.status = "Saved " + path
	m.logger.Info("screenshot saved", "path", path)
}

// State returns the game state after the last simulation step.
func (m Model) State() core.GameState {
	return m.state
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		panel := renderPanel("How to Play", howToPlay+"\n\n"+m.help.View(m.keys))
		return lipgloss.Place(m.runtime.ScreenW, m.runtime.ScreenH, lipgloss.Center, lipgloss.Center, panel)
	}

	m.screen.Resize(m.runtime.ScreenW, fieldHeight(m.runtime.ScreenH, m.status != ""))
	m.game.Render(m.screen)

	out := RenderScreen(m.screen)
	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status)
	}
	return out + "\n" + m.help.View(m.keys)
}

const howToPlay = `• Use ← → to move the paddle
• Keep the ball bouncing to score points
• The ball changes direction based on where it hits the paddle
• The ball gradually slows down due to friction
• The round ends if the ball hits the bottom or stops moving`

// fieldHeight is the number of rows left for the game after the help bar
// and the optional status line.
func fieldHeight(screenH int, status bool) int {
	h := screenH - 1
	if status {
		h--
	}
	return max(0, h)
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, runtime core.RuntimeConfig, opts Options) error {
	model := NewModel(game, runtime, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
