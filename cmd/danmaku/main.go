// danmaku is a terminal bullet-hazard simulator: it runs scripted hazard
// patterns against static collision geometry and records how a stationary
// target fares.
//
// Usage:
//
//	danmaku list                 - List available patterns
//	danmaku view <pattern|file>  - Watch a pattern run
//	danmaku run <pattern|file>   - Run a pattern headless and print totals
//	danmaku menu                 - Pick patterns interactively
//	danmaku serve                - Start SSH server for remote viewing
//	danmaku runs [pattern]       - Show recorded runs
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.danmaku/runs.db)
//	--config <path>       - Simulation tunables YAML
//	--difficulty <preset> - Pressure preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/danmaku/internal/config"
	"github.com/vovakirdan/danmaku/internal/core"
	_ "github.com/vovakirdan/danmaku/internal/patterns" // Register stock patterns
	"github.com/vovakirdan/danmaku/internal/registry"
	"github.com/vovakirdan/danmaku/internal/scenario"
	"github.com/vovakirdan/danmaku/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "danmaku",
	Short: "Danmaku - bullet-hazard patterns in your terminal",
	Long: `Danmaku runs bullet-hell hazard patterns against static walls, rivers
and enemies, and records how a stationary target fares.

Patterns are either built in or loaded from scenario YAML files, which may
attach tengo scripts to hazards.

Available commands:
  list     - Show all available patterns
  view     - Watch a pattern run
  run      - Run a pattern headless
  menu     - Interactive pattern picker
  serve    - Start SSH server for remote viewing
  runs     - View recorded runs

Examples:
  danmaku list
  danmaku view spiral-garden
  danmaku view ./stage.yaml --watch
  danmaku run shatter --ticks 3600 --seed 7 --save
  danmaku serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.danmaku/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Pressure preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLogger returns the stderr logger configured by --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "danmaku",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadSimConfig loads the tunables and applies --difficulty.
func loadSimConfig() (config.SimConfig, error) {
	cfg, err := config.LoadSim(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		config.ApplySimPreset(&cfg, config.ParsePreset(flagDifficulty))
	}
	return cfg, nil
}

// runtimeConfig sizes the viewport to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the runs database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// isScenarioFile reports whether arg names a scenario file rather than a
// registered pattern.
func isScenarioFile(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// loaderFor returns a function that builds the pattern or scenario file
// named by arg.
func loaderFor(arg string, logger *log.Logger) (func() (*scenario.Scenario, error), error) {
	if isScenarioFile(arg) {
		if _, err := os.Stat(arg); err != nil {
			return nil, err
		}
		return func() (*scenario.Scenario, error) { return scenario.Load(arg, logger) }, nil
	}
	if !registry.Exists(arg) {
		return nil, fmt.Errorf("unknown pattern %q (run 'danmaku list' to see available patterns)", arg)
	}
	return func() (*scenario.Scenario, error) { return registry.Build(arg, logger) }, nil
}
