package replay

import (
	"github.com/vovakirdan/tui-pingpong/internal/games/pingpong"
)

// Player re-simulates a recording on a fresh engine. Live key events are
// ignored; the recording is the only input source.
type Player struct {
	rec    *Recording
	engine *pingpong.Engine
	next   int
}

// NewPlayer creates a player positioned at the start of rec.
func NewPlayer(rec *Recording) *Player {
	return &Player{
		rec:    rec,
		engine: pingpong.NewEngine(rec.Config),
	}
}

// HandleKey ignores live input during playback.
func (p *Player) HandleKey(pingpong.KeyEvent) {}

// Tick applies the events due before the next step, then advances the
// engine. It stops advancing once the recorded tick count is reached.
func (p *Player) Tick() pingpong.Event {
	if p.Done() {
		return 0
	}
	now := p.engine.Ticks()
	for p.next < len(p.rec.Events) && p.rec.Events[p.next].Tick <= now {
		p.engine.HandleKey(p.rec.Events[p.next].Key)
		p.next++
	}
	return p.engine.Tick()
}

// Done reports whether playback has reached the end of the recording.
func (p *Player) Done() bool {
	return p.engine.Over() || p.engine.Ticks() >= p.rec.Ticks
}

// Reset rewinds playback to the first tick.
func (p *Player) Reset() {
	p.engine = pingpong.NewEngine(p.rec.Config)
	p.next = 0
}

// Frame returns the current playback frame.
func (p *Player) Frame() pingpong.Frame {
	return p.engine.Frame()
}

// Progress returns the number of ticks played and the recording length.
func (p *Player) Progress() (played, total uint64) {
	return p.engine.Ticks(), p.rec.Ticks
}
