package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
	flagClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs",
	Long: `List the most recent runs from the run journal.

Every run that ends in a collision is journaled with its seed and the ticks
the player flapped on, which is all a replay needs.

Examples:
  flappy runs
  flappy runs --limit 50
  flappy runs --browse    # Pick a run interactively and watch it
  flappy runs --clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to list")
	runsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse runs interactively and watch the selected one")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every journaled run")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run journal cleared.")
		return
	}

	if flagBrowse && term.IsTerminal(int(os.Stdout.Fd())) {
		browseRuns(store)
		return
	}

	runs, err := store.RecentRuns(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Run Journal - Flappy Bird")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to record the first run!")
		return
	}

	fmt.Printf("  %-8s  %-6s  %-7s  %-6s  %s\n", "Run", "Score", "Ticks", "Flaps", "Date")
	fmt.Printf("  %-8s  %-6s  %-7s  %-6s  %s\n", "---", "-----", "-----", "-----", "----")

	for _, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-8s  %-6d  %-7d  %-6d  %s\n", shortRunID(r.ID), r.Score, r.Ticks, len(r.Inputs), dateStr)
	}

	if total, err := store.RunCount(gameID); err == nil && total > len(runs) {
		fmt.Println()
		fmt.Printf("Showing %d of %d runs.\n", len(runs), total)
	}
}

// browseRuns opens the journal table and replays the picked run on screen.
func browseRuns(store *storage.Store) {
	cfg := runtimeConfig()

	rec, err := tui.RunJournal(store, gameID, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		return
	}

	game, err := flappy.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(game, cfg, tui.WithReplay(rec.Summary())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// shortRunID trims a run ID to the prefix accepted by 'flappy replay'.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
