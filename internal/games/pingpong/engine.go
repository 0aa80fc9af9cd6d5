// Package pingpong implements a single-player paddle-and-ball game.
// The player keeps a friction-damped ball in play by deflecting it upward
// off a paddle; the round ends when the ball stops or falls past the paddle.
//
// The Engine holds all mutable game state and is driven by three calls:
// HandleInput (or HandleKey), Tick and Reset. It performs no I/O and is
// deterministic for a given input sequence.
package pingpong

import (
	"math"

	"github.com/vovakirdan/tui-pingpong/internal/config"
	"github.com/vovakirdan/tui-pingpong/internal/core"
)

// Paddle is the player's horizontal bat. X is its left edge, Y its top.
type Paddle struct {
	X, Y          float64
	Width, Height float64
	DX            float64 // Horizontal velocity per tick: -Speed, 0 or +Speed
	Speed         float64
}

// CenterX returns the horizontal center of the paddle.
func (p Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Ball is the moving ball. X and Y are its center.
type Ball struct {
	X, Y      float64
	Radius    float64
	DX, DY    float64 // Velocity per tick
	BaseSpeed float64 // Scales the deflection off the paddle
	Friction  float64 // Per-tick velocity multiplier, < 1
	MinSpeed  float64 // Below this the ball counts as stopped
}

// Speed returns the magnitude of the ball's velocity.
func (b Ball) Speed() float64 {
	return math.Sqrt(b.DX*b.DX + b.DY*b.DY)
}

// Event is a set of things that happened during one tick.
type Event uint8

const (
	EventWallBounce    Event = 1 << iota // Ball reversed off the left or right wall
	EventCeilingBounce                   // Ball reversed off the top wall
	EventPaddleHit                       // Ball deflected off the paddle, score +1
	EventStopped                         // Ball slowed below MinSpeed, round over
	EventMissed                          // Ball passed the bottom edge, round over
)

// Has reports whether every flag in other is set.
func (ev Event) Has(other Event) bool {
	return ev&other == other && other != 0
}

// Ended reports whether the round ended on this tick.
func (ev Event) Ended() bool {
	return ev&(EventStopped|EventMissed) != 0
}

// Engine is the ping-pong simulation. It exclusively owns the paddle, the
// ball and the round state; callers mutate it only through HandleInput,
// HandleKey, Tick and Reset, and read it through Frame.
type Engine struct {
	cfg    config.Config
	paddle Paddle
	ball   Ball
	score  int
	over   bool
	ticks  uint64
}

// NewEngine creates an engine from construction parameters and serves the
// first round.
func NewEngine(cfg config.Config) *Engine {
	e := &Engine{
		cfg: cfg,
		paddle: Paddle{
			Y:      cfg.Paddle.Y,
			Width:  cfg.Paddle.Width,
			Height: cfg.Paddle.Height,
			Speed:  cfg.Paddle.Speed,
		},
		ball: Ball{
			Radius:   cfg.Ball.Radius,
			Friction: cfg.Ball.Friction,
			MinSpeed: cfg.Ball.MinSpeed,
		},
	}
	e.Reset()
	return e
}

// Config returns the construction parameters.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Reset restores the ball, the paddle position, the score and the over flag
// to their initial values. Sizes, speeds and damping constants are left
// alone, and so is the paddle velocity: a key still held keeps steering.
func (e *Engine) Reset() {
	e.ball.X = e.cfg.Ball.X
	e.ball.Y = e.cfg.Ball.Y
	e.ball.DX = e.cfg.Ball.DX
	e.ball.DY = e.cfg.Ball.DY
	e.ball.BaseSpeed = e.cfg.Ball.Speed

	e.paddle.X = e.cfg.Paddle.X

	e.score = 0
	e.over = false
	e.ticks = 0
}

// HandleInput sets the paddle velocity. The paddle moves on the next Tick.
func (e *Engine) HandleInput(dir Direction) {
	switch dir {
	case DirectionLeft:
		e.paddle.DX = -e.paddle.Speed
	case DirectionRight:
		e.paddle.DX = e.paddle.Speed
	default:
		e.paddle.DX = 0
	}
}

// HandleKey applies a key transition. Releasing either arrow stops the
// paddle, even when the other arrow is still held.
func (e *Engine) HandleKey(ev KeyEvent) {
	e.HandleInput(ev.Direction())
}

// Tick advances the simulation by one step and reports what happened.
// Once the round is over it changes nothing until Reset.
func (e *Engine) Tick() Event {
	if e.over {
		return 0
	}
	e.ticks++

	var events Event
	p := &e.paddle
	b := &e.ball
	fieldW, fieldH := e.cfg.Field.Width, e.cfg.Field.Height

	// Paddle: hard clamp, velocity untouched
	p.X = core.ClampF(p.X+p.DX, 0, fieldW-p.Width)

	// Friction before movement
	b.DX *= b.Friction
	b.DY *= b.Friction

	b.X += b.DX
	b.Y += b.DY

	if b.Speed() < b.MinSpeed {
		e.over = true
		return events | EventStopped
	}

	// Walls reverse velocity only; the ball may overshoot for a tick
	if b.X+b.Radius > fieldW || b.X-b.Radius < 0 {
		b.DX *= -1
		events |= EventWallBounce
	}
	if b.Y-b.Radius < 0 {
		b.DY *= -1
		events |= EventCeilingBounce
	}

	// No swept test: a ball already below the paddle top but within its
	// span still bounces
	if b.Y+b.Radius > p.Y && b.X > p.X && b.X < p.X+p.Width {
		e.deflect()
		events |= EventPaddleHit
	}

	if b.Y+b.Radius > fieldH {
		e.over = true
		events |= EventMissed
	}

	return events
}

// deflect sends the ball upward at an angle set by where it met the paddle
// and scores the hit. The incoming horizontal velocity is discarded.
func (e *Engine) deflect() {
	b := &e.ball
	hit := HitPosition(b.X, e.paddle)

	b.DX = hit * b.BaseSpeed * e.cfg.Physics.AngleFactor
	b.DY = -math.Abs(b.DY)

	b.DX *= e.cfg.Physics.BoostFactor
	b.DY *= e.cfg.Physics.BoostFactor

	e.score++
}

// HitPosition returns the ball's offset from the paddle center, normalized
// so the paddle edges are -1 and +1. It is not clamped.
func HitPosition(ballX float64, p Paddle) float64 {
	return (ballX - p.CenterX()) / (p.Width / 2)
}

// Paddle returns a copy of the paddle.
func (e *Engine) Paddle() Paddle {
	return e.paddle
}

// Ball returns a copy of the ball.
func (e *Engine) Ball() Ball {
	return e.ball
}

// Score returns the number of paddle hits this round.
func (e *Engine) Score() int {
	return e.score
}

// Over reports whether the round has ended.
func (e *Engine) Over() bool {
	return e.over
}

// Ticks returns the number of steps simulated since the last Reset.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}
