package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play straight away",
	Long: `Start playing without the menu.

Controls:
  Space/W/Up - Flap
  P          - Pause
  ?          - Show all keys
  Ctrl+S     - Save a text screenshot
  Esc/Q      - Quit

The terminal belongs to the game, so logs only go to --log-file.

Examples:
  flappy play
  flappy play --seed 42
  flappy play --config ./my-flappy.yaml
  flappy play --log-file /tmp/flappy.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	logger, err := newLogger(out, gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := flappy.Load(flagConfig, flappy.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := []tui.ModelOption{tui.WithLogger(logger)}
	if store := openStore(); store != nil {
		defer store.Close()
		opts = append(opts, tui.WithStore(store))
	}

	cfg := runtimeConfig()
	logger.Info("starting", "seed", cfg.Seed, "fps", cfg.TickRate)

	if err := tui.Run(game, cfg, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
