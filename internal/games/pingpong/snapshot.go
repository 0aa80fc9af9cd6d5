package pingpong

import "math"

// EndReason tells why a round ended.
type EndReason int

const (
	EndNone    EndReason = iota // Round still in play
	EndStopped                  // Ball slowed below the minimum speed
	EndMissed                   // Ball passed the bottom edge
)

// String returns the stable name used in logs and recordings.
func (r EndReason) String() string {
	switch r {
	case EndStopped:
		return "stopped"
	case EndMissed:
		return "missed"
	default:
		return "playing"
	}
}

// Headline returns the overlay title for a finished round.
func (r EndReason) Headline() string {
	switch r {
	case EndStopped:
		return "Ball Stopped!"
	case EndMissed:
		return "Game Over!"
	default:
		return ""
	}
}

// Frame is a read-only copy of everything a renderer needs for one frame.
type Frame struct {
	Tick uint64

	FieldW, FieldH float64

	PaddleX, PaddleY float64
	PaddleW, PaddleH float64
	PaddleSpeed      float64

	BallX, BallY   float64
	BallDX, BallDY float64
	BallRadius     float64

	Score    int
	Over     bool
	Speed    float64 // Current ball speed
	MinSpeed float64
}

// Frame returns the current render snapshot.
func (e *Engine) Frame() Frame {
	return Frame{
		Tick:        e.ticks,
		FieldW:      e.cfg.Field.Width,
		FieldH:      e.cfg.Field.Height,
		PaddleX:     e.paddle.X,
		PaddleY:     e.paddle.Y,
		PaddleW:     e.paddle.Width,
		PaddleH:     e.paddle.Height,
		PaddleSpeed: e.paddle.Speed,
		BallX:       e.ball.X,
		BallY:       e.ball.Y,
		BallDX:      e.ball.DX,
		BallDY:      e.ball.DY,
		BallRadius:  e.ball.Radius,
		Score:       e.score,
		Over:        e.over,
		Speed:       e.ball.Speed(),
		MinSpeed:    e.ball.MinSpeed,
	}
}

// EndReason derives why the round ended from the ball speed at read time.
// A ball slower than MinSpeed stopped; any other finished round was missed.
func (f Frame) EndReason() EndReason {
	if !f.Over {
		return EndNone
	}
	if f.Speed < f.MinSpeed {
		return EndStopped
	}
	return EndMissed
}

// Hash returns a fingerprint of the dynamic state for determinism checks.
func (f Frame) Hash() uint64 {
	h := f.Tick
	for _, v := range []float64{f.PaddleX, f.BallX, f.BallY, f.BallDX, f.BallDY} {
		h = h*31 + math.Float64bits(v)
	}
	h = h*31 + uint64(f.Score) //#nosec G115 -- hash computation
	if f.Over {
		h = h*31 + 1
	}
	return h
}
