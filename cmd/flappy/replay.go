package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-simulate a journaled run",
	Long: `Re-simulate a journaled run headless and check that it ends with the
recorded score after the recorded number of ticks.

The run ID may be shortened to any unique prefix, as printed by 'flappy runs'.

Examples:
  flappy replay 3f2a9c1e
  flappy replay 3f2a --watch    # Also play it back on screen`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the run back on screen after verifying it")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rec, err := store.RunByID(args[0])
	if errors.Is(err, storage.ErrAmbiguousID) {
		fmt.Fprintf(os.Stderr, "Run ID %q is ambiguous, use a longer prefix\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching run: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "No run with ID %q\n", args[0])
		os.Exit(1)
	}

	game, err := flappy.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	run := rec.Summary()
	fmt.Printf("Run %s: seed %d, %d ticks, %d flaps, score %d\n",
		shortRunID(rec.ID), run.Seed, run.Ticks, len(run.Inputs), run.Score)

	if err := replay.Verify(game, run); err != nil {
		fmt.Fprintf(os.Stderr, "Replay failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Replay OK")

	if !flagWatch {
		return
	}
	if err := tui.Run(game, runtimeConfig(), tui.WithReplay(run)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
