// runner is Paper Runner, an endless runner with persistent upgrades played in the terminal.
//
// Usage:
//
//	runner play              - Play a run from the menu
//	runner serve             - Start SSH server for remote play
//	runner stats             - Show levels, grade and coins
//	runner upgrade <stat>    - Spend coins on health or speed
//	runner runs              - Show run history
//	runner replay <file>     - Verify a recorded run
//	runner config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Override tick rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.paper-runner/runner.db)
//	--profile <name>    - Progression profile (default: default)
//	--log-file <path>   - Log destination (default: ~/.paper-runner/runner.log)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/progression"
	"github.com/vovakirdan/paper-runner/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagProfile  string
	flagLogFile  string
	flagLogLevel string
)

// main is the only exit point: commands return errors so their deferred
// cleanup (log file, database) runs first.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "runner",
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "Paper Runner - an endless runner in your terminal",
	Long: `Paper Runner is a terminal endless runner. Jump and duck past obstacles,
collect papers and coins, and spend coins on permanent health and speed upgrades.

Available commands:
  play     - Play from the start menu
  serve    - Start SSH server for remote play
  stats    - Show progression for a profile
  upgrade  - Buy one health or speed level
  runs     - Show best and recent runs
  replay   - Re-simulate a recorded run and check its result
  config   - Print the effective configuration

Examples:
  runner play
  runner play --difficulty hard --record
  runner serve --ssh :2222
  runner upgrade health
  runner runs --top`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.paper-runner/runner.db", "Path to progression database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "default", "Progression profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.paper-runner/runner.log", "Path to log file (empty = stderr)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger opens the log destination. The returned func closes it.
// The TUI owns the terminal, so logs go to a file unless --log-file is empty.
func newLogger(prefix string) (*log.Logger, func() error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	var out io.Writer = os.Stderr
	closer := func() error { return nil }
	if flagLogFile != "" {
		path, expErr := config.ExpandHome(flagLogFile)
		if expErr == nil {
			expErr = os.MkdirAll(filepath.Dir(path), 0o755)
		}
		var f *os.File
		if expErr == nil {
			f, expErr = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		}
		if expErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", expErr)
			out = io.Discard
		} else {
			out = f
			closer = f.Close
		}
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), closer
}

// loadConfig resolves the runner config from --config, --difficulty and --fps.
func loadConfig(path, difficulty string) (config.RunnerConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if difficulty != "" {
		preset, ok := config.ParseDifficulty(difficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", difficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}

	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDB opens the database named by --db.
func openDB() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

// openProgress builds the profile's progression store. Without a database
// progress is kept in memory for this process only and the returned *storage.Store is nil.
func openProgress(cfg config.RunnerConfig, logger *log.Logger) (*progression.Store, *storage.Store) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("database unavailable, progress will not persist", "path", flagDBPath, "error", err)
		port := progression.NewMemoryPort(progression.DefaultStats())
		return progression.NewStore(port, cfg.Progression, logger), nil
	}
	return progression.NewStore(db.Profile(flagProfile), cfg.Progression, logger), db
}
