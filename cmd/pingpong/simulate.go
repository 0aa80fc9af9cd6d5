package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pingpong/internal/games/pingpong"
	"github.com/vovakirdan/tui-pingpong/internal/loop"
	"github.com/vovakirdan/tui-pingpong/internal/replay"
)

var (
	flagTicks     int
	flagAutopilot bool
	flagAim       float64
	flagRealtime  bool
	flagSave      bool
)

// maxSimTicks bounds a headless run when --ticks is not given.
const maxSimTicks = 1_000_000

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a round headless",
	Long: `Run one round without the terminal UI and print how it ended.

Without --autopilot the paddle never moves. With --realtime the round runs
at the configured tick rate and prints progress as it goes.

Examples:
  pingpong simulate
  pingpong simulate --autopilot --aim 0.7
  pingpong simulate --autopilot --realtime
  pingpong simulate --ticks 120 --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = until the round ends)")
	simulateCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Steer the paddle automatically")
	simulateCmd.Flags().Float64Var(&flagAim, "aim", 0.5, "Autopilot hit position, 0 (center) to 1 (edge)")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Run at the configured tick rate")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store the round as a replay")
}

// simulation steps a recorder with an optional autopilot.
type simulation struct {
	rec   *replay.Recorder
	pilot *pingpong.Autopilot
	last  pingpong.Direction
	limit uint64
}

// step advances one tick and reports whether the run should continue.
func (s *simulation) step() bool {
	frame := s.rec.Frame()
	if frame.Over || frame.Tick >= s.limit {
		return false
	}
	if s.pilot != nil {
		// Send a key only when the decision changes, like a player would
		if dir := s.pilot.Decide(frame); dir != s.last {
			s.rec.HandleKey(dir.Key())
			s.last = dir
		}
	}
	s.rec.Tick()
	return true
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	sim := &simulation{
		rec:   replay.NewRecorder(pingpong.NewEngine(cfg)),
		limit: maxSimTicks,
	}
	if flagTicks > 0 {
		sim.limit = uint64(flagTicks)
	}
	if flagAutopilot {
		sim.pilot = &pingpong.Autopilot{Aim: flagAim}
	}

	out := cmd.OutOrStdout()
	start := time.Now()
	if flagRealtime {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		stepper := loop.NewStepper(cfg.TickInterval(), loop.DefaultMaxSteps)
		runner := loop.NewRunner(flagFPS, logger)
		err := runner.Run(ctx, func(elapsed time.Duration) bool {
			for range stepper.Advance(elapsed) {
				if !sim.step() {
					return false
				}
			}
			f := sim.rec.Frame()
			fmt.Fprintf(out, "\rtick %6d  score %3d  speed %5.2f", f.Tick, f.Score, f.Speed)
			return true
		})
		fmt.Fprintln(out)
		logger.Debug("realtime run stopped", "dropped_steps", stepper.Dropped())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else {
		for sim.step() {
		}
	}

	rec := sim.rec.Recording()
	logger.Info("simulation finished",
		"ticks", rec.Ticks, "score", rec.Score, "reason", rec.EndReason,
		"elapsed", time.Since(start).Round(time.Millisecond))

	frame := sim.rec.Frame()
	if frame.Over {
		fmt.Fprintf(out, "%s after %d ticks (%.1fs of play)\n",
			frame.EndReason().Headline(), rec.Ticks, float64(rec.Ticks)/float64(cfg.Physics.TickRate))
	} else {
		fmt.Fprintf(out, "Stopped at tick %d, round still in play\n", rec.Ticks)
	}
	fmt.Fprintf(out, "Score: %d\n", rec.Score)

	if flagSave {
		store := openStore(logger)
		if store == nil {
			return errors.New("cannot save replay: database unavailable")
		}
		defer store.Close()

		id, err := store.SaveReplay(rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved as replay #%d\n", id)
	}
	return nil
}
