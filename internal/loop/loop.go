// Package loop drives a fixed-step simulation from wall-clock time.
//
// A Stepper converts elapsed real time into a whole number of simulation
// steps, carrying the remainder to the next frame. Run calls a frame function
// on a ticker until it asks to stop or its context is cancelled.
package loop

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultMaxSteps bounds the catch-up work done for a single frame.
const DefaultMaxSteps = 8

// Stepper is a fixed-timestep accumulator.
type Stepper struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
	dropped  int
}

// NewStepper creates an accumulator that emits one step per interval.
// A frame never emits more than maxSteps steps; older backlog is discarded.
func NewStepper(interval time.Duration, maxSteps int) *Stepper {
	if interval <= 0 {
		interval = time.Second / 60
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Stepper{step: interval, maxSteps: maxSteps}
}

// Interval returns the duration of one step.
func (s *Stepper) Interval() time.Duration {
	return s.step
}

// Advance adds elapsed time and returns how many steps are now due.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		s.acc += elapsed
	}
	n := int(s.acc / s.step)
	s.acc -= time.Duration(n) * s.step

	if n > s.maxSteps {
		s.dropped += n - s.maxSteps
		n = s.maxSteps
	}
	return n
}

// Dropped returns the number of steps discarded by the catch-up limit.
func (s *Stepper) Dropped() int {
	return s.dropped
}

// Reset clears any accumulated time.
func (s *Stepper) Reset() {
	s.acc = 0
}

// FrameFunc is called once per frame with the time since the previous frame.
// Returning false stops the loop.
type FrameFunc func(elapsed time.Duration) bool

// Runner calls a FrameFunc on a fixed real-time interval.
type Runner struct {
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// NewRunner creates a runner that fires fps times per second.
func NewRunner(fps int, logger *log.Logger) *Runner {
	if fps <= 0 {
		fps = 60
	}
	return &Runner{
		interval: time.Second / time.Duration(fps),
		logger:   logger,
		now:      time.Now,
	}
}

// Run calls frame on the caller's goroutine until frame returns false or ctx
// is done. A cancelled context is reported as its error.
func (r *Runner) Run(ctx context.Context, frame FrameFunc) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	if r.logger != nil {
		r.logger.Debug("loop started", "interval", r.interval)
	}

	last := r.now()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			r.stopped(frames, ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			now := r.now()
			elapsed := now.Sub(last)
			last = now
			frames++
			if !frame(elapsed) {
				r.stopped(frames, nil)
				return nil
			}
		}
	}
}

func (r *Runner) stopped(frames int, err error) {
	if r.logger == nil {
		return
	}
	if err != nil {
		r.logger.Debug("loop cancelled", "frames", frames, "error", err)
		return
	}
	r.logger.Debug("loop finished", "frames", frames)
}
