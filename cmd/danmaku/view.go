package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/danmaku/internal/platform/tui"
	"github.com/vovakirdan/danmaku/internal/watch"
)

var flagWatch bool

var viewCmd = &cobra.Command{
	Use:   "view <pattern|file.yaml>",
	Short: "Watch a pattern run",
	Long: `Run a pattern in the terminal.

Controls:
  P/Space     - Pause
  .           - Step one tick while paused
  +/-         - Faster/slower
  Arrows/WASD - Move the target
  R           - Restart
  Shift+R     - Reload the scenario, keeping hazards in flight
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

With --watch, a scenario file is reloaded whenever it or a script next to
it changes.

Examples:
  danmaku view vortex
  danmaku view shatter --difficulty hard
  danmaku view ./stage.yaml --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func init() {
	viewCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the scenario file when it changes")
}

func runView(_ *cobra.Command, args []string) {
	arg := args[0]
	logger := newLogger()

	load, err := loaderFor(arg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	simCfg, err := loadSimConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var watcher *watch.Watcher
	if flagWatch {
		if !isScenarioFile(arg) {
			fmt.Fprintln(os.Stderr, "Error: --watch needs a scenario file")
			os.Exit(1)
		}
		watcher, err = watch.New(filepath.Dir(arg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", arg, err)
			os.Exit(1)
		}
		defer watcher.Close()
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runErr := tui.Run(tui.Options{
		Load:    load,
		Store:   store,
		Runtime: runtimeConfig(),
		Sim:     simCfg,
		Logger:  logger,
		Watcher: watcher,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
