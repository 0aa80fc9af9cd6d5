package replay

import (
	"github.com/vovakirdan/tui-pingpong/internal/games/pingpong"
)

// Recorder wraps an engine and logs every key event it forwards.
type Recorder struct {
	engine *pingpong.Engine
	events []Event
}

// NewRecorder starts recording the current round of engine.
func NewRecorder(engine *pingpong.Engine) *Recorder {
	r := &Recorder{engine: engine}
	r.carryVelocity()
	return r
}

// Engine returns the wrapped engine.
func (r *Recorder) Engine() *pingpong.Engine {
	return r.engine
}

// HandleKey records the event at the current tick and forwards it.
func (r *Recorder) HandleKey(ev pingpong.KeyEvent) {
	if !r.engine.Over() {
		r.events = append(r.events, Event{Tick: r.engine.Ticks(), Key: ev})
	}
	r.engine.HandleKey(ev)
}

// Tick advances the engine.
func (r *Recorder) Tick() pingpong.Event {
	return r.engine.Tick()
}

// Reset starts a new round and a new recording. The paddle velocity survives
// an engine reset, so it is carried into the new log as the first event.
func (r *Recorder) Reset() {
	r.engine.Reset()
	r.events = r.events[:0]
	r.carryVelocity()
}

func (r *Recorder) carryVelocity() {
	if key := keyForVelocity(r.engine.Paddle().DX); key != pingpong.KeyNone {
		r.events = append(r.events, Event{Tick: r.engine.Ticks(), Key: key})
	}
}

// Frame returns the engine's current frame.
func (r *Recorder) Frame() pingpong.Frame {
	return r.engine.Frame()
}

// Recording returns a snapshot of the round so far.
func (r *Recorder) Recording() *Recording {
	frame := r.engine.Frame()
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return &Recording{
		Config:    r.engine.Config(),
		Events:    events,
		Ticks:     frame.Tick,
		Score:     frame.Score,
		EndReason: frame.EndReason().String(),
		Hash:      frame.Hash(),
	}
}

func keyForVelocity(dx float64) pingpong.KeyEvent {
	switch {
	case dx < 0:
		return pingpong.LeftPressed
	case dx > 0:
		return pingpong.RightPressed
	default:
		return pingpong.KeyNone
	}
}
