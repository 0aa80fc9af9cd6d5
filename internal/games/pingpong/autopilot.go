package pingpong

import "math"

// Autopilot steers the paddle toward the ball. It is used for headless
// demo runs; it only reads frames and never touches the engine directly.
type Autopilot struct {
	// Aim is the hit position the autopilot tries to strike, in [-1, 1].
	// A non-zero aim keeps the ball moving sideways after each bounce.
	Aim float64
}

// Decide returns the direction that brings the aim point under the ball.
func (a Autopilot) Decide(f Frame) Direction {
	if f.Over {
		return DirectionNone
	}

	// Strike the ball with the side of the paddle facing the field center,
	// so the deflection sends it back toward the middle.
	aim := math.Abs(a.Aim)
	if f.BallX > f.FieldW/2 {
		aim = -aim
	}
	target := f.BallX - aim*f.PaddleW/2
	center := f.PaddleX + f.PaddleW/2

	diff := target - center
	// Dead zone of half a paddle step avoids jitter around the target
	deadZone := f.PaddleSpeed / 2
	switch {
	case diff > deadZone:
		return DirectionRight
	case diff < -deadZone:
		return DirectionLeft
	default:
		return DirectionNone
	}
}
