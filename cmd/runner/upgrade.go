package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paper-runner/internal/progression"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <health|speed>",
	Short: "Spend coins on one upgrade level",
	Long: `Buy one level of health or speed for the profile.

Examples:
  runner upgrade health
  runner upgrade speed --profile alice`,
	Args: cobra.ExactArgs(1),
	RunE: runUpgrade,
}

func runUpgrade(_ *cobra.Command, args []string) error {
	stat, err := progression.ParseStat(args[0])
	if err != nil {
		return err
	}

	logger, closeLog := newLogger("runner")
	defer closeLog()

	cfg, err := loadConfig("", "")
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	progress := progression.NewStore(db.Profile(flagProfile), cfg.Progression, logger)
	if err := progress.Upgrade(stat); err != nil {
		if errors.Is(err, progression.ErrInsufficientFunds) {
			return fmt.Errorf("need %d coins to upgrade %s (have %d)",
				progress.Price(), stat, progress.Stats().Currency)
		}
		return fmt.Errorf("saving upgrade: %w", err)
	}

	stats := progress.Stats()
	fmt.Printf("Upgraded %s! Health Lv.%d  Speed Lv.%d  |  Grade %s  |  Coins: %d\n",
		stat, stats.Health, stats.Speed, progress.Grade(), stats.Currency)
	return nil
}
