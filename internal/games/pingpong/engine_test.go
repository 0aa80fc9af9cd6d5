package pingpong

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pingpong/internal/config"
)

const eps = 1e-9

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(config.DefaultConfig())
}

func TestNewEngineInitialState(t *testing.T) {
	e := newTestEngine(t)

	p := e.Paddle()
	assert.Equal(t, 350.0, p.X)
	assert.Equal(t, 580.0, p.Y)
	assert.Equal(t, 100.0, p.Width)
	assert.Equal(t, 10.0, p.Height)
	assert.Equal(t, 0.0, p.DX)

	b := e.Ball()
	assert.Equal(t, 400.0, b.X)
	assert.Equal(t, 300.0, b.Y)
	assert.Equal(t, 6.0, b.DX)
	assert.Equal(t, 6.0, b.DY)
	assert.Equal(t, 6.0, b.BaseSpeed)

	assert.Zero(t, e.Score())
	assert.False(t, e.Over())
	assert.Zero(t, e.Ticks())
}

func TestHandleInput(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want float64
	}{
		{"left", DirectionLeft, -8},
		{"right", DirectionRight, 8},
		{"none", DirectionNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			e.HandleInput(DirectionRight)
			e.HandleInput(tt.dir)
			assert.Equal(t, tt.want, e.Paddle().DX)
		})
	}
}

func TestHandleKeyReleaseStopsPaddle(t *testing.T) {
	e := newTestEngine(t)

	e.HandleKey(LeftPressed)
	assert.Equal(t, -8.0, e.Paddle().DX)

	// Right pressed while left still held: last press wins
	e.HandleKey(RightPressed)
	assert.Equal(t, 8.0, e.Paddle().DX)

	// Releasing the key that is not steering still stops the paddle
	e.HandleKey(LeftReleased)
	assert.Equal(t, 0.0, e.Paddle().DX)

	e.HandleKey(LeftPressed)
	e.HandleKey(RightReleased)
	assert.Equal(t, 0.0, e.Paddle().DX)

	e.HandleKey(RightPressed)
	e.HandleKey(StopPressed)
	assert.Equal(t, 0.0, e.Paddle().DX)
}

func TestPaddleMovesOnTick(t *testing.T) {
	e := newTestEngine(t)

	e.HandleInput(DirectionLeft)
	assert.Equal(t, 350.0, e.Paddle().X, "input alone must not move the paddle")

	e.Tick()
	assert.Equal(t, 342.0, e.Paddle().X)
}

func TestPaddleClamp(t *testing.T) {
	e := newTestEngine(t)

	e.paddle.X = 790
	e.paddle.DX = 1000
	e.Tick()
	assert.Equal(t, 700.0, e.Paddle().X)
	assert.Equal(t, 1000.0, e.Paddle().DX, "clamping leaves velocity alone")

	e.paddle.X = -50
	e.paddle.DX = -1000
	e.Tick()
	assert.Equal(t, 0.0, e.Paddle().X)
}

func TestPaddleStaysInBounds(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewSource(7))
	dirs := []Direction{DirectionLeft, DirectionRight, DirectionNone}

	for range 2000 {
		if e.Over() {
			e.Reset()
		}
		e.HandleInput(dirs[rng.Intn(len(dirs))])
		e.Tick()

		x := e.Paddle().X
		require.GreaterOrEqual(t, x, 0.0)
		require.LessOrEqual(t, x, 800.0-100.0)
	}
}

func TestSpeedOnlyGrowsOnPaddleHit(t *testing.T) {
	e := newTestEngine(t)
	pilot := Autopilot{Aim: 0.6}
	hits := 0

	for range 3000 {
		if e.Over() {
			e.Reset()
		}
		e.HandleInput(pilot.Decide(e.Frame()))

		before := e.Ball().Speed()
		ev := e.Tick()
		after := e.Ball().Speed()

		if ev.Has(EventPaddleHit) {
			hits++
			continue
		}
		require.LessOrEqual(t, after, before+eps, "speed grew without a paddle hit")
	}
	assert.Positive(t, hits, "autopilot should return the ball at least once")
}

func TestCeilingBounce(t *testing.T) {
	e := newTestEngine(t)
	e.ball.X, e.ball.Y = 400, 10
	e.ball.DX, e.ball.DY = 6, -6

	ev := e.Tick()

	assert.True(t, ev.Has(EventCeilingBounce))
	assert.False(t, ev.Has(EventWallBounce))
	assert.InDelta(t, 6*0.99, e.Ball().DY, eps)
	assert.InDelta(t, 6*0.99, e.Ball().DX, eps)
	assert.False(t, e.Over())
}

func TestWallBounce(t *testing.T) {
	tests := []struct {
		name   string
		x, dx  float64
		wantDX float64
	}{
		{"right wall", 795, 6, -6 * 0.99},
		{"left wall", 5, -6, 6 * 0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			e.ball.X, e.ball.Y = tt.x, 300
			e.ball.DX, e.ball.DY = tt.dx, 1

			ev := e.Tick()

			assert.True(t, ev.Has(EventWallBounce))
			assert.InDelta(t, tt.wantDX, e.Ball().DX, eps)
		})
	}
}

func TestWallBounceDoesNotCorrectPosition(t *testing.T) {
	e := newTestEngine(t)
	e.ball.X, e.ball.Y = 797, 300
	e.ball.DX, e.ball.DY = 6, 0

	e.Tick()

	// The ball overshoots the wall for a tick; only its velocity flips
	assert.InDelta(t, 797+6*0.99, e.Ball().X, eps)
	assert.Negative(t, e.Ball().DX)
}

func TestPaddleHitCenter(t *testing.T) {
	e := newTestEngine(t)
	e.ball.X, e.ball.Y = 400, 570
	e.ball.DX, e.ball.DY = 0, 6

	ev := e.Tick()

	require.True(t, ev.Has(EventPaddleHit))
	assert.InDelta(t, 0, e.Ball().DX, eps)
	assert.InDelta(t, -6*0.99*1.1, e.Ball().DY, eps)
	assert.Equal(t, 1, e.Score())
	assert.False(t, e.Over())
}

func TestPaddleHitOffCenter(t *testing.T) {
	e := newTestEngine(t)
	e.ball.X, e.ball.Y = 440, 570
	e.ball.DX, e.ball.DY = 0, 6

	ev := e.Tick()

	require.True(t, ev.Has(EventPaddleHit))
	// Hit position 0.8: dx = 0.8 * 6 * 1.5 * 1.1
	assert.InDelta(t, 7.92, e.Ball().DX, eps)
	assert.Negative(t, e.Ball().DY)
}

func TestDeflectAtPaddleEdge(t *testing.T) {
	e := newTestEngine(t)
	e.ball.X = 450
	e.ball.DY = 6

	assert.InDelta(t, 1.0, HitPosition(450, e.Paddle()), eps)
	assert.InDelta(t, -1.0, HitPosition(350, e.Paddle()), eps)

	e.deflect()

	assert.InDelta(t, 1*6*1.5*1.1, e.Ball().DX, eps)
	assert.InDelta(t, -6*1.1, e.Ball().DY, eps)
	assert.Equal(t, 1, e.Score())
}

func TestHitPositionUnclamped(t *testing.T) {
	p := Paddle{X: 350, Width: 100}
	assert.InDelta(t, 1.5, HitPosition(475, p), eps)
	assert.InDelta(t, -2.0, HitPosition(300, p), eps)
}

func TestPaddleEdgeIsExclusive(t *testing.T) {
	e := newTestEngine(t)
	e.ball.X, e.ball.Y = 450, 570
	e.ball.DX, e.ball.DY = 0, 6

	ev := e.Tick()

	assert.False(t, ev.Has(EventPaddleHit))
	assert.Zero(t, e.Score())
}

func TestBallBelowPaddleTopStillBounces(t *testing.T) {
	e := newTestEngine(t)
	e.ball.X, e.ball.Y = 400, 586
	e.ball.DX, e.ball.DY = 0, 3

	ev := e.Tick()

	assert.True(t, ev.Has(EventPaddleHit))
	assert.Negative(t, e.Ball().DY)
}

func TestFrictionStopsBall(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Field.Width, cfg.Field.Height = 10000, 10000
	cfg.Ball.X, cfg.Ball.Y = 5000, 5000
	cfg.Paddle.Y = 9900
	e := NewEngine(cfg)

	var ev Event
	ticks := 0
	for !e.Over() {
		prev := e.Ball().Speed()
		ev = e.Tick()
		ticks++
		require.Less(t, ticks, 1000, "ball never stopped")
		if !e.Over() {
			require.GreaterOrEqual(t, e.Ball().Speed(), 0.5)
		} else {
			require.GreaterOrEqual(t, prev, 0.5)
		}
	}

	assert.Equal(t, EventStopped, ev)
	assert.Less(t, e.Ball().Speed(), 0.5)
	assert.Equal(t, EndStopped, e.Frame().EndReason())

	// Speed 6√2 decays by 0.99 per tick
	want := int(math.Ceil(math.Log(0.5/(6*math.Sqrt2)) / math.Log(0.99)))
	assert.Equal(t, want, ticks)
}

func TestStoppedSkipsBottomCheck(t *testing.T) {
	e := newTestEngine(t)
	e.ball.X, e.ball.Y = 100, 599
	e.ball.DX, e.ball.DY = 0, 0.5

	ev := e.Tick()

	assert.Equal(t, EventStopped, ev)
	assert.True(t, e.Over())
	assert.Equal(t, EndStopped, e.Frame().EndReason())
}

func TestMissAtBottom(t *testing.T) {
	e := newTestEngine(t)
	e.paddle.X = 0
	e.ball.X, e.ball.Y = 600, 590
	e.ball.DX, e.ball.DY = 0, 6

	ev := e.Tick()

	assert.True(t, ev.Has(EventMissed))
	assert.True(t, ev.Ended())
	assert.True(t, e.Over())
	assert.Zero(t, e.Score())
	assert.Equal(t, EndMissed, e.Frame().EndReason())
}

func TestNoInputRoundEndsByMiss(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput(DirectionLeft)

	var ev Event
	for range 500 {
		if ev = e.Tick(); ev.Ended() {
			break
		}
	}

	require.True(t, e.Over())
	assert.True(t, ev.Has(EventMissed))
	assert.Zero(t, e.Score())
}

func TestTickAfterOverIsNoop(t *testing.T) {
	e := newTestEngine(t)
	e.paddle.X = 0
	e.ball.X, e.ball.Y = 600, 590
	e.ball.DX, e.ball.DY = 0, 6
	e.Tick()
	require.True(t, e.Over())

	e.HandleInput(DirectionRight)
	before := e.Frame()
	paddleDX := e.Paddle().DX

	for range 10 {
		assert.Zero(t, e.Tick())
	}

	assert.Equal(t, before, e.Frame())
	assert.Equal(t, paddleDX, e.Paddle().DX)
}

func TestResetRestoresRound(t *testing.T) {
	e := newTestEngine(t)
	e.HandleInput(DirectionRight)
	for range 40 {
		e.Tick()
	}
	e.score = 3
	e.over = true

	e.Reset()

	assert.Equal(t, 350.0, e.Paddle().X)
	assert.Equal(t, 8.0, e.Paddle().DX, "held key keeps steering after reset")
	assert.Equal(t, 400.0, e.Ball().X)
	assert.Equal(t, 300.0, e.Ball().Y)
	assert.Equal(t, 6.0, e.Ball().DX)
	assert.Equal(t, 6.0, e.Ball().DY)
	assert.Zero(t, e.Score())
	assert.False(t, e.Over())
	assert.Zero(t, e.Ticks())
}

func TestDeterminismAfterReset(t *testing.T) {
	inputs := make([]Direction, 600)
	rng := rand.New(rand.NewSource(42))
	for i := range inputs {
		inputs[i] = Direction(rng.Intn(3))
	}

	run := func(e *Engine) []uint64 {
		hashes := make([]uint64, 0, len(inputs))
		for _, dir := range inputs {
			e.HandleInput(dir)
			e.Tick()
			hashes = append(hashes, e.Frame().Hash())
		}
		return hashes
	}

	e := newTestEngine(t)
	first := run(e)

	e.HandleInput(DirectionNone)
	e.Reset()
	second := run(e)

	other := newTestEngine(t)
	third := run(other)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestNoInputTrajectoryRepeats(t *testing.T) {
	e := newTestEngine(t)
	positions := func() [][2]float64 {
		var out [][2]float64
		for range 50 {
			e.Tick()
			b := e.Ball()
			out = append(out, [2]float64{b.X, b.Y})
		}
		return out
	}

	first := positions()
	e.Reset()
	second := positions()

	assert.Equal(t, first, second)
}

func TestEventFlags(t *testing.T) {
	ev := EventWallBounce | EventPaddleHit

	assert.True(t, ev.Has(EventWallBounce))
	assert.True(t, ev.Has(EventPaddleHit))
	assert.True(t, ev.Has(EventWallBounce|EventPaddleHit))
	assert.False(t, ev.Has(EventCeilingBounce))
	assert.False(t, ev.Has(0))
	assert.False(t, ev.Ended())

	assert.True(t, EventStopped.Ended())
	assert.True(t, (EventMissed | EventPaddleHit).Ended())
}

func TestKeyEventText(t *testing.T) {
	for k, name := range keyEventNames {
		text, err := k.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))

		var got KeyEvent
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	var k KeyEvent
	assert.Error(t, k.UnmarshalText([]byte("jump")))

	_, err := KeyEvent(99).MarshalText()
	assert.Error(t, err)
}

func TestFrameHashChanges(t *testing.T) {
	e := newTestEngine(t)
	h0 := e.Frame().Hash()
	e.Tick()
	assert.NotEqual(t, h0, e.Frame().Hash())
}

func TestEndReason(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  EndReason
		head  string
	}{
		{"playing", Frame{Speed: 0.1, MinSpeed: 0.5}, EndNone, ""},
		{"stopped", Frame{Over: true, Speed: 0.4, MinSpeed: 0.5}, EndStopped, "Ball Stopped!"},
		{"missed", Frame{Over: true, Speed: 6, MinSpeed: 0.5}, EndMissed, "Game Over!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.frame.EndReason())
			assert.Equal(t, tt.head, tt.want.Headline())
		})
	}
}
