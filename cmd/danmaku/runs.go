package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/danmaku/internal/platform/tui"
	"github.com/vovakirdan/danmaku/internal/registry"
	"github.com/vovakirdan/danmaku/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTUI   bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [pattern]",
	Short: "Show recorded runs",
	Long: `Show recorded runs from the database.

Without a pattern, lists the most recent runs of every pattern.
With a pattern, lists its best runs: fewest player hits first, then longest.

Examples:
  danmaku runs
  danmaku runs vortex --limit 5
  danmaku runs vortex --clear
  danmaku runs --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Open the interactive runs board")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every run of the pattern")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) == 0 {
		if flagRunsClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a pattern")
			os.Exit(1)
		}
		runs, err := store.RecentRuns(flagRunsLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printRuns("Recent runs", runs)
		return
	}

	pattern := args[0]
	if !registry.Exists(pattern) {
		fmt.Fprintf(os.Stderr, "Warning: %q is not a registered pattern\n", pattern)
	}

	if flagRunsClear {
		if err := store.ClearRuns(pattern); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s\n", pattern)
		return
	}

	runs, err := store.BestRuns(pattern, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printRuns("Best runs for "+pattern, runs)

	stats, err := store.GetPatternStats(pattern)
	if err == nil && stats.Runs > 0 {
		fmt.Printf("\n%d runs, %.1f hits on average, peak of %d hazards\n", stats.Runs, stats.AvgHits, stats.MaxPeak)
	}
}

func printRuns(title string, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return
	}

	fmt.Println(title + ":")
	fmt.Println()
	fmt.Printf("  %4s  %-16s  %5s  %7s  %5s  %8s  %-16s\n", "#", "Pattern", "Hits", "Ticks", "Peak", "Absorbed", "Date")
	for _, r := range runs {
		fmt.Printf("  %4d  %-16s  %5d  %7d  %5d  %8d  %-16s\n",
			r.ID, r.Pattern, r.PlayerHits, r.Ticks, r.Peak, r.Absorbed,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
