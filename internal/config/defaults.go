package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pingpong.yaml
var defaultYAML []byte

// DefaultConfig returns the reference configuration: an 800x600 field,
// a 100-wide paddle near the bottom and a ball served from the center.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Paddle: PaddleConfig{
			X:      350,
			Y:      580,
			Width:  100,
			Height: 10,
			Speed:  8,
		},
		Ball: BallConfig{
			X:        400,
			Y:        300,
			Radius:   8,
			Speed:    6,
			DX:       6,
			DY:       6,
			Friction: 0.99,
			MinSpeed: 0.5,
		},
		Physics: PhysicsConfig{
			AngleFactor: 1.5,
			BoostFactor: 1.1,
			TickRate:    60,
		},
		Input: InputConfig{
			FirstReleaseAfter: 550 * time.Millisecond,
			ReleaseAfter:      120 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
