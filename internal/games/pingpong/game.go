package pingpong

import (
	"fmt"

	"github.com/vovakirdan/tui-pingpong/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '▀'
	BallChar   = '●'
	HUDLine    = '─'
)

// Minimum terminal size that still shows a playable field.
const (
	MinScreenW = 30
	MinScreenH = 10
)

// Simulation is what the terminal game drives each tick. *Engine satisfies
// it directly; recorders and replay players wrap an engine to satisfy it.
type Simulation interface {
	HandleKey(ev KeyEvent)
	Tick() Event
	Reset()
	Frame() Frame
}

// Game adapts a Simulation to the terminal host: it turns input frames into
// key events, advances one tick per Step, and draws frames onto a screen.
type Game struct {
	sim     Simulation
	runtime core.RuntimeConfig
	paused  bool
}

// NewGame wraps a simulation for the terminal host.
func NewGame(sim Simulation) *Game {
	return &Game{sim: sim}
}

// ID returns the identifier used for screenshots and logs.
func (g *Game) ID() string {
	return "pingpong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Ping Pong"
}

// Reset starts a new round sized for the given terminal.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.sim.Reset()
}

// Resize adapts rendering to a new terminal size without touching the round.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime = runtime
}

// Step applies the frame's input in arrival order and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	frame := g.sim.Frame()
	if frame.Over && in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		switch a {
		case core.ActionLeft:
			g.sim.HandleKey(LeftPressed)
		case core.ActionRight:
			g.sim.HandleKey(RightPressed)
		case core.ActionReleaseLeft:
			g.sim.HandleKey(LeftReleased)
		case core.ActionReleaseRight:
			g.sim.HandleKey(RightReleased)
		case core.ActionStop:
			g.sim.HandleKey(StopPressed)
		case core.ActionPause:
			if !frame.Over {
				g.paused = !g.paused
			}
		}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	events := g.sim.Tick()
	return core.StepResult{State: g.State(), Ended: events.Ended()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	frame := g.sim.Frame()
	return core.GameState{
		Score:    frame.Score,
		GameOver: frame.Over,
		Paused:   g.paused,
	}
}

// Render draws the current frame. Row 0 is the HUD; the field fills the rest.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	frame := g.sim.Frame()
	view := core.NewViewport(frame.FieldW, frame.FieldH, core.NewRect(0, 1, dst.Width(), dst.Height()-1))

	g.renderHUD(dst, frame)
	g.renderPaddle(dst, frame, view)
	g.renderBall(dst, frame, view)

	switch {
	case frame.Over:
		reason := frame.EndReason()
		g.drawCenteredBox(dst, reason.Headline(),
			fmt.Sprintf("Final Score: %d", frame.Score),
			"Press R or Enter to play again")
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen, frame Frame) {
	dst.DrawHLine(0, 0, dst.Width(), HUDLine)
	dst.DrawTextColored(1, 0, fmt.Sprintf(" Score: %d ", frame.Score), core.ColorBrightWhite)

	speed := fmt.Sprintf(" Speed: %.2f ", frame.Speed)
	color := core.ColorGray
	if frame.Speed < frame.MinSpeed*4 {
		color = core.ColorYellow
	}
	dst.DrawTextColored(dst.Width()-len(speed)-1, 0, speed, color)
}

func (g *Game) renderPaddle(dst *core.Screen, frame Frame, view core.Viewport) {
	x, width := view.SpanX(frame.PaddleX, frame.PaddleW)
	y := min(view.CellY(frame.PaddleY), view.Area.Bottom()-1)
	for i := range width {
		if view.Visible(x+i, y) {
			dst.SetColored(x+i, y, PaddleChar, core.ColorCyan)
		}
	}
}

func (g *Game) renderBall(dst *core.Screen, frame Frame, view core.Viewport) {
	x, y := view.CellX(frame.BallX), view.CellY(frame.BallY)
	if view.Visible(x, y) {
		dst.SetColored(x, y, BallChar, core.ColorYellow)
	}
}

// drawCenteredBox draws a message box in the center of the screen.
func (g *Game) drawCenteredBox(dst *core.Screen, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorRed)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}
