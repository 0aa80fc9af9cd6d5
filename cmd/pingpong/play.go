package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pingpong/internal/config"
	"github.com/vovakirdan/tui-pingpong/internal/core"
	"github.com/vovakirdan/tui-pingpong/internal/games/pingpong"
	"github.com/vovakirdan/tui-pingpong/internal/platform/tui"
	"github.com/vovakirdan/tui-pingpong/internal/replay"
	"github.com/vovakirdan/tui-pingpong/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a round of ping pong.

Controls:
  ←/A/H  →/D/L - Move the paddle
  Space/S/↓     - Stop the paddle
  P/Esc         - Pause
  R/Enter       - Play again (after the round ends)
  ?             - How to play
  Ctrl+S        - Screenshot
  Q/Ctrl+C      - Quit

Every finished round is saved as a replay (see 'pingpong replays').

Examples:
  pingpong play
  pingpong play --fps 30
  pingpong play --config ./my-pingpong.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store == nil {
		fmt.Fprintln(os.Stderr, "Warning: replay database unavailable, rounds will not be recorded")
	} else {
		defer store.Close()
	}

	recorder := replay.NewRecorder(pingpong.NewEngine(cfg))
	game := pingpong.NewGame(recorder)

	return runTUI(game, cfg, logger, tui.Options{
		OnRoundEnd: func(state core.GameState) string {
			return saveRound(store, recorder, logger)
		},
	})
}

// runTUI runs a game full-screen with options derived from the config.
func runTUI(game tui.Game, cfg config.Config, logger *log.Logger, opts tui.Options) error {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Physics.TickRate,
	}

	opts.Input = cfg.Input
	opts.TickRate = cfg.Physics.TickRate
	opts.FPS = flagFPS
	opts.Logger = logger
	opts.Screenshot = screenshotDir()

	if err := tui.Run(game, runtime, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// saveRound stores the round that just ended and returns a status line.
func saveRound(store *storage.Store, recorder *replay.Recorder, logger *log.Logger) string {
	if store == nil {
		return ""
	}
	rec := recorder.Recording()
	id, err := store.SaveReplay(rec)
	if err != nil {
		logger.Error("could not save replay", "error", err)
		return "Replay not saved: " + err.Error()
	}
	logger.Info("replay saved", "id", id, "score", rec.Score, "reason", rec.EndReason, "ticks", rec.Ticks)
	return fmt.Sprintf("Replay #%d saved", id)
}
