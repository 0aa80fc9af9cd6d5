package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pingpong/internal/core"
	"github.com/vovakirdan/tui-pingpong/internal/games/pingpong"
	"github.com/vovakirdan/tui-pingpong/internal/platform/tui"
	"github.com/vovakirdan/tui-pingpong/internal/replay"
	"github.com/vovakirdan/tui-pingpong/internal/storage"
)

var (
	flagWatch  bool
	flagDelete bool
	flagExport bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify or watch a recorded round",
	Long: `Re-simulate a recorded round and check that it ends exactly as recorded.

With --watch the round is played back in the terminal; R/Enter restarts
playback once it ends. With --export the recording is printed as YAML.

Examples:
  pingpong replay 3
  pingpong replay 3 --watch
  pingpong replay 3 --export > round.yaml
  pingpong replay 3 --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the round back in the terminal")
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay")
	replayCmd.Flags().BoolVar(&flagExport, "export", false, "Print the recording as YAML")
	replayCmd.MarkFlagsMutuallyExclusive("watch", "delete", "export")
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid replay ID %q", args[0])
	}

	logger, closeLog, err := newLogger(flagWatch)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagDelete {
		if err := store.DeleteReplay(id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted replay #%d\n", id)
		return nil
	}

	rec, err := store.LoadReplay(id)
	if err != nil {
		return err
	}

	if flagExport {
		data, err := replay.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	if flagWatch {
		return watchReplay(id, rec, logger)
	}

	entry, err := store.ReplayByID(id)
	if err != nil {
		return err
	}

	frame, err := replay.Verify(rec)
	if err != nil {
		logger.Error("replay diverged", "id", id, "error", err)
		return err
	}

	logger.Debug("replay verified", "id", id, "hash", rec.Hash)
	ending := frame.EndReason().String()
	if !rec.Finished() {
		ending += " (recorded before the round ended)"
	}
	fmt.Fprintf(out, "Replay #%d verified\n", id)
	fmt.Fprintf(out, "  Recorded: %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "  Ending:   %s\n", ending)
	fmt.Fprintf(out, "  Ticks:    %d\n", frame.Tick)
	fmt.Fprintf(out, "  Score:    %d\n", frame.Score)
	fmt.Fprintf(out, "  Keys:     %d\n", len(rec.Events))
	return nil
}

// watchReplay plays a recording back in the terminal.
func watchReplay(id int64, rec *replay.Recording, logger *log.Logger) error {
	player := replay.NewPlayer(rec)
	game := pingpong.NewGame(player)
	return runTUI(game, rec.Config, logger, tui.Options{
		Status:     fmt.Sprintf("Replay #%d", id),
		OnRoundEnd: replayEndStatus(id, player),
	})
}

// replayEndStatus reports where playback ended relative to the recording.
func replayEndStatus(id int64, player *replay.Player) tui.RoundEndFunc {
	return func(state core.GameState) string {
		played, total := player.Progress()
		return fmt.Sprintf("Replay #%d ended at tick %d/%d: score %d", id, played, total, state.Score)
	}
}
