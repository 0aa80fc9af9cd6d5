// pingpong is a single-player ping-pong game for the terminal.
//
// Usage:
//
//	pingpong                 - Play (same as "pingpong play")
//	pingpong play            - Play in the terminal
//	pingpong simulate        - Run a round headless
//	pingpong replays         - List recorded rounds
//	pingpong replay <id>     - Verify or watch a recorded round
//	pingpong config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Render rate (default: 60)
//	--config <path>      - Custom pingpong.yaml
//	--db <path>          - Replay database (default: ~/.pingpong/pingpong.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pingpong/internal/config"
	"github.com/vovakirdan/tui-pingpong/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pingpong",
	Short: "Ping Pong - keep the ball bouncing in your terminal",
	Long: `Ping Pong is a single-player paddle game for the terminal.

Move the paddle to deflect the ball upward. Every hit scores a point and
speeds the ball up, but friction slows it down: the round ends when the
ball stops or falls past the paddle.

Available commands:
  play      - Play in the terminal (default)
  simulate  - Run a round headless
  replays   - List recorded rounds
  replay    - Verify or watch a recorded round
  config    - Print the effective configuration

Examples:
  pingpong
  pingpong --fps 30
  pingpong simulate --autopilot
  pingpong replays --browse
  pingpong replay 3 --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pingpong.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. While the TUI owns the terminal,
// logs only go to --log-file; otherwise they default to stderr.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "pingpong",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads the engine configuration from --config or the search path.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded",
		"field", fmt.Sprintf("%gx%g", cfg.Field.Width, cfg.Field.Height),
		"tick_rate", cfg.Physics.TickRate)
	return cfg, nil
}

// openStore opens the replay database. Commands that can run without it get
// a nil store and a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		return nil
	}
	return store
}

// screenshotDir returns where ctrl+s writes screenshots.
func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pingpong", "screenshots")
}
