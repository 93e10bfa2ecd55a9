package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/core"
	"github.com/vovakirdan/paper-runner/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Paper Runner",
	Long: `Open the start menu and play.

Controls:
  Space/Up/W - Jump
  Down/S     - Duck
  P/Esc      - Pause
  Enter      - Start (menu) / run again (game over)
  M          - Back to menu (game over)
  H/1, V/2   - Upgrade health / speed (menu)
  Tab        - Run history
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Half damage, longer invincibility, slower base speed
  normal - Config as loaded
  hard   - Double damage, shorter invincibility, faster base speed

Examples:
  runner play
  runner play --difficulty hard
  runner play --config ./my-runner.yaml
  runner play --record                # replays in ~/.paper-runner/replays
  runner play --record=./replays --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of every finished run into this directory")
	playCmd.Flags().Lookup("record").NoOptDefVal = config.UserPath("replays")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger("runner")
	defer closeLog()

	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	progress, db := openProgress(cfg, logger)

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
			Profile:  flagProfile,
		},
		Progress:  progress,
		RecordDir: flagRecord,
		Logger:    logger,
	}
	// Leave History nil without a database so the interface is not a typed nil
	if db != nil {
		defer db.Close()
		opts.History = db
	}

	logger.Info("starting", "profile", flagProfile, "difficulty", flagDifficulty, "tick_rate", cfg.Timing.TickRate)
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	stats := progress.Stats()
	fmt.Printf("Grade %s  |  Coins: %d  |  Health Lv.%d  Speed Lv.%d\n",
		progress.Grade(), stats.Currency, stats.Health, stats.Speed)
	return nil
}
