package pingpong

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-pingpong/internal/config"
)

func TestAutopilotDecide(t *testing.T) {
	base := Frame{FieldW: 800, PaddleX: 350, PaddleW: 100, PaddleSpeed: 8}

	tests := []struct {
		name  string
		aim   float64
		ballX float64
		over  bool
		want  Direction
	}{
		{"ball far left", 0, 100, false, DirectionLeft},
		{"ball far right", 0, 700, false, DirectionRight},
		{"ball over center", 0, 400, false, DirectionNone},
		{"inside dead zone", 0, 403, false, DirectionNone},
		{"round over", 0, 100, true, DirectionNone},
		// Ball right of center: strike with the right half to send it back left
		{"aim right half", 0.5, 410, false, DirectionRight},
		// Ball left of center: strike with the left half
		{"aim left half", 0.5, 390, false, DirectionLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base
			f.BallX = tt.ballX
			f.Over = tt.over
			got := Autopilot{Aim: tt.aim}.Decide(f)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAutopilotReturnsBall(t *testing.T) {
	e := NewEngine(config.DefaultConfig())
	pilot := Autopilot{Aim: 0.5}

	for range 5000 {
		if e.Over() {
			break
		}
		e.HandleInput(pilot.Decide(e.Frame()))
		e.Tick()
	}

	assert.True(t, e.Over())
	assert.Positive(t, e.Score())
}
