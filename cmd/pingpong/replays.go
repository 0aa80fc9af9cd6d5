package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pingpong/internal/platform/tui"
	"github.com/vovakirdan/tui-pingpong/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
	flagClear  bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded rounds",
	Long: `Display the most recent recorded rounds, newest first.

With --browse the rounds are shown in an interactive table; Enter watches
the highlighted round and x deletes it. --clear deletes every recording.

Examples:
  pingpong replays
  pingpong replays --limit 50
  pingpong replays --browse
  pingpong replays --clear`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to show")
	replaysCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse replays interactively")
	replaysCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded rounds")
	replaysCmd.MarkFlagsMutuallyExclusive("browse", "clear")
}

func runReplays(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		n, err := store.ClearReplays()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d recorded rounds\n", n)
		return nil
	}

	if flagBrowse {
		return browseReplays(store)
	}

	entries, err := store.RecentReplays(flagLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Recorded Rounds")
	fmt.Fprintln(out)

	if len(entries) == 0 {
		fmt.Fprintln(out, "No rounds recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'pingpong' to record your first round!")
		return nil
	}

	// Score is part of each recording's summary; there is no high-score table.
	fmt.Fprintf(out, "  %-5s  %-6s  %-8s  %-7s  %-6s  %s\n", "ID", "Score", "Ending", "Ticks", "Keys", "Date")
	fmt.Fprintf(out, "  %-5s  %-6s  %-8s  %-7s  %-6s  %s\n", "--", "-----", "------", "-----", "----", "----")

	for _, e := range entries {
		fmt.Fprintf(out, "  %-5d  %-6d  %-8s  %-7d  %-6d  %s\n",
			e.ID, e.Score, e.EndReason, e.Ticks, e.Events, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// browseReplays runs the replay browser and watches the chosen round.
func browseReplays(store *storage.Store) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	id, err := tui.RunReplayBrowser(store, width, height)
	if err != nil {
		return fmt.Errorf("running replay browser: %w", err)
	}
	if id == 0 {
		return nil
	}

	rec, err := store.LoadReplay(id)
	if err != nil {
		return err
	}
	logger.Info("watching replay", "id", id)
	return watchReplay(id, rec, logger)
}
