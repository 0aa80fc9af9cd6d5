// Package replay records the key events of a ping-pong round and plays them
// back. The engine is deterministic, so a recording of (tick, key) pairs plus
// the construction parameters reproduces the round exactly.
package replay

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pingpong/internal/config"
	"github.com/vovakirdan/tui-pingpong/internal/games/pingpong"
)

// ErrDiverged is returned when a re-simulated recording does not end in the
// recorded state.
var ErrDiverged = errors.New("replay: simulation diverged from recording")

// Event is one key transition, applied before the engine's (Tick+1)th step.
type Event struct {
	Tick uint64            `yaml:"tick"`
	Key  pingpong.KeyEvent `yaml:"key"`
}

// Recording is everything needed to re-simulate one round.
type Recording struct {
	Config    config.Config `yaml:"config"`
	Events    []Event       `yaml:"events"`
	Ticks     uint64        `yaml:"ticks"`
	Score     int           `yaml:"score"`
	EndReason string        `yaml:"end_reason"`
	Hash      uint64        `yaml:"hash"`
}

// Finished reports whether the recorded round reached an end state.
func (r *Recording) Finished() bool {
	return r.EndReason != pingpong.EndNone.String()
}

// Marshal encodes a recording as YAML.
func Marshal(rec *Recording) ([]byte, error) {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a YAML recording and checks its event order.
func Unmarshal(data []byte) (*Recording, error) {
	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	for i := 1; i < len(rec.Events); i++ {
		if rec.Events[i].Tick < rec.Events[i-1].Tick {
			return nil, fmt.Errorf("replay: event %d at tick %d precedes tick %d",
				i, rec.Events[i].Tick, rec.Events[i-1].Tick)
		}
	}
	if n := len(rec.Events); n > 0 && rec.Events[n-1].Tick > rec.Ticks {
		return nil, fmt.Errorf("replay: event at tick %d after recording end %d",
			rec.Events[n-1].Tick, rec.Ticks)
	}
	return &rec, nil
}

// Verify re-simulates a recording from scratch and checks that it ends on
// the recorded tick with the recorded fingerprint. It returns the final frame.
func Verify(rec *Recording) (pingpong.Frame, error) {
	if err := rec.Config.Validate(); err != nil {
		return pingpong.Frame{}, fmt.Errorf("replay: %w", err)
	}

	p := NewPlayer(rec)
	for !p.Done() {
		p.Tick()
	}

	frame := p.Frame()
	if frame.Tick != rec.Ticks || frame.Hash() != rec.Hash {
		return frame, fmt.Errorf("%w: got tick %d score %d, recorded tick %d score %d",
			ErrDiverged, frame.Tick, frame.Score, rec.Ticks, rec.Score)
	}
	return frame, nil
}
