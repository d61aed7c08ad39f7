package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyclimb/internal/games/climb"
	"github.com/vovakirdan/skyclimb/internal/platform/tui"
	"github.com/vovakirdan/skyclimb/internal/registry"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagRecent      bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the best runs for a mode (default: climb).

Examples:
  skyclimb scores
  skyclimb scores climb_daily
  skyclimb scores --recent
  skyclimb scores --interactive
  skyclimb scores climb --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in the full-screen board")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs of every mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run of the mode")
	scoresCmd.MarkFlagsMutuallyExclusive("interactive", "recent", "clear")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := climb.ModeEndless
	if len(args) == 1 {
		mode = args[0]
	}

	info, ok := registry.Info(mode)
	if !ok {
		return fmt.Errorf("unknown mode %q (run 'skyclimb modes' to list them)", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height, mode)
	case flagRecent:
		return printRecentRuns(os.Stdout, store, flagLimit)
	case flagClear:
		if err := store.ClearRuns(mode); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Printf("Cleared every %s run.\n", info.Title)
		return nil
	}
	return printTopRuns(os.Stdout, store, info, flagLimit)
}

func printTopRuns(w io.Writer, store *storage.Store, info registry.GameInfo, limit int) error {
	runs, err := store.TopRuns(info.ID, limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(w, "Best Runs - %s\n\n", info.Title)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'skyclimb play' to put the first one on the board!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-7s  %-20s  %-6s  %s\n", "Rank", "Height", "Seed", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-7s  %-20s  %-6s  %s\n", "----", "------", "----", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-7d  %-20d  %-6s  %s\n",
			i+1, r.Height, r.Seed, clock(r), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(info.ID); err == nil && stats.Runs > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Runs: %d  Best: %d  Average: %.1f  Rescues: %d\n",
			stats.Runs, stats.BestHeight, stats.AvgHeight, stats.Rescues)
	}
	return nil
}

func printRecentRuns(w io.Writer, store *storage.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprint(w, "Recent Runs\n\n")
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-16s  %-12s  %-7s  %s\n", "Date", "Mode", "Height", "Time")
	fmt.Fprintf(w, "  %-16s  %-12s  %-7s  %s\n", "----", "----", "------", "----")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-16s  %-12s  %-7d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Mode, r.Height, clock(r))
	}
	return nil
}

// clock renders a run length as m:ss.
func clock(r storage.Run) string {
	secs := int(r.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
