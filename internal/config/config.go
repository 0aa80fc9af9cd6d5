// Package config provides YAML-based configuration loading for the
// ping-pong engine and its terminal host.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all construction parameters for a ping-pong engine.
// Values are fixed at engine creation; nothing here is tuned at runtime.
type Config struct {
	Field   FieldConfig   `yaml:"field"`
	Paddle  PaddleConfig  `yaml:"paddle"`
	Ball    BallConfig    `yaml:"ball"`
	Physics PhysicsConfig `yaml:"physics"`
	Input   InputConfig   `yaml:"input"`
}

// FieldConfig defines the playfield size in world units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the paddle's initial placement and size.
type PaddleConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// BallConfig defines the ball's initial state and damping.
type BallConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"` // Base speed used by the paddle deflection
	DX       float64 `yaml:"dx"`
	DY       float64 `yaml:"dy"`
	Friction float64 `yaml:"friction"`  // Per-tick multiplier, < 1
	MinSpeed float64 `yaml:"min_speed"` // Below this the ball counts as stopped
}

// PhysicsConfig defines the bounce constants and the simulation rate.
type PhysicsConfig struct {
	AngleFactor float64 `yaml:"angle_factor"`
	BoostFactor float64 `yaml:"boost_factor"`
	TickRate    int     `yaml:"tick_rate"`
}

// InputConfig controls how the terminal host synthesizes key releases.
type InputConfig struct {
	FirstReleaseAfter time.Duration `yaml:"first_release_after"`
	ReleaseAfter      time.Duration `yaml:"release_after"`
}

// Validation errors. Validate joins every failure so callers can check
// each with errors.Is.
var (
	ErrInvalidField    = errors.New("config: field dimensions must be positive")
	ErrInvalidPaddle   = errors.New("config: paddle does not fit the field")
	ErrInvalidBall     = errors.New("config: ball parameters out of range")
	ErrInvalidFriction = errors.New("config: friction must be in (0, 1)")
	ErrInvalidPhysics  = errors.New("config: physics parameters out of range")
	ErrInvalidInput    = errors.New("config: input release windows must be positive")
)

// Validate checks that the configuration describes a playable field.
func (c Config) Validate() error {
	var errs []error

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, ErrInvalidField)
	}

	p := c.Paddle
	if p.Width <= 0 || p.Height <= 0 || p.Speed <= 0 ||
		p.Width > c.Field.Width || p.X < 0 || p.X+p.Width > c.Field.Width ||
		p.Y < 0 || p.Y > c.Field.Height {
		errs = append(errs, fmt.Errorf("%w: x=%g y=%g width=%g", ErrInvalidPaddle, p.X, p.Y, p.Width))
	}

	b := c.Ball
	if b.Radius <= 0 || b.Speed <= 0 || b.MinSpeed < 0 {
		errs = append(errs, fmt.Errorf("%w: radius=%g speed=%g min_speed=%g", ErrInvalidBall, b.Radius, b.Speed, b.MinSpeed))
	}
	if b.Friction <= 0 || b.Friction >= 1 {
		errs = append(errs, fmt.Errorf("%w: got %g", ErrInvalidFriction, b.Friction))
	}

	if c.Physics.AngleFactor <= 0 || c.Physics.BoostFactor <= 0 || c.Physics.TickRate <= 0 {
		errs = append(errs, ErrInvalidPhysics)
	}

	if c.Input.FirstReleaseAfter <= 0 || c.Input.ReleaseAfter <= 0 {
		errs = append(errs, ErrInvalidInput)
	}

	return errors.Join(errs...)
}

// TickInterval returns the wall-clock duration of one simulation step.
func (c Config) TickInterval() time.Duration {
	if c.Physics.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Physics.TickRate)
}
