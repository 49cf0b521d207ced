package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/danmaku/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick patterns from an interactive menu",
	Long: `Start danmaku in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to watch a pattern.
When you leave a pattern, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select pattern
  Tab          - Recorded runs
  Q            - Quit

Examples:
  danmaku menu
  danmaku menu --fps 30
  danmaku menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger()

	simCfg, err := loadSimConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	fixedSeed := cfg.Seed != 0

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsRuns {
			if store == nil {
				fmt.Fprintln(os.Stderr, "No runs database available")
				continue
			}
			goBack, runsErr := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if goBack {
				continue
			}
			break
		}

		load, err := loaderFor(menuResult.PatternID, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		if !fixedSeed {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(tui.Options{
			Load:    load,
			Store:   store,
			Runtime: cfg,
			Sim:     simCfg,
			Logger:  logger,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running pattern: %v\n", err)
		}
	}
}
