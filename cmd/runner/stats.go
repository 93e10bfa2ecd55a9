package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/progression"
	"github.com/vovakirdan/paper-runner/internal/storage"
)

var flagStatsAll bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progression for a profile",
	Long: `Display upgrade levels, grade, coins and run summary for the profile.
With --all, list every profile stored in the database.

Examples:
  runner stats
  runner stats --profile alice
  runner stats --all`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsAll, "all", false, "List every profile with saved progression")
}

func runStats(_ *cobra.Command, _ []string) error {
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

	if flagStatsAll {
		return printProfiles(db, cfg)
	}

	progress := progression.NewStore(db.Profile(flagProfile), cfg.Progression, logger)
	stats := progress.Stats()

	fmt.Printf("Profile - %s\n", flagProfile)
	fmt.Println()
	fmt.Printf("  %-12s  %s\n", "Grade", progress.Grade())
	fmt.Printf("  %-12s  %d\n", "Coins", stats.Currency)
	fmt.Printf("  %-12s  Lv.%d (max HP %d)\n", "Health", stats.Health, progress.MaxHealth())
	fmt.Printf("  %-12s  Lv.%d (speed %.1f)\n", "Speed", stats.Speed, progress.GameSpeed())
	fmt.Printf("  %-12s  %d coins\n", "Upgrade", progress.Price())

	summary, err := db.Summary(flagProfile)
	if err != nil {
		logger.Warn("could not load run summary", "error", err)
		return nil
	}

	fmt.Println()
	if summary.RunsCount == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	fmt.Printf("  %-12s  %d\n", "Runs", summary.RunsCount)
	fmt.Printf("  %-12s  %d\n", "Best", summary.BestScore)
	fmt.Printf("  %-12s  %.0f\n", "Average", summary.AvgScore)
	fmt.Printf("  %-12s  %d\n", "Coins earned", summary.CoinsEarned)
	if !summary.LastPlayed.IsZero() {
		fmt.Printf("  %-12s  %s\n", "Last played", summary.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// printProfiles lists every stored profile with its grade and coins.
func printProfiles(db *storage.Store, cfg config.RunnerConfig) error {
	profiles, err := db.Profiles()
	if err != nil {
		return err
	}

	fmt.Println("Profiles")
	fmt.Println()
	if len(profiles) == 0 {
		fmt.Println("No profiles saved yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-7s  %-6s  %s\n", "Profile", "Grade", "Health", "Speed", "Coins")
	fmt.Printf("  %-16s  %-5s  %-7s  %-6s  %s\n", "-------", "-----", "------", "-----", "-----")
	for _, name := range profiles {
		stats, err := db.Profile(name).Load()
		if err != nil {
			return err
		}
		stats = stats.Normalize()
		fmt.Printf("  %-16s  %-5s  %-7d  %-6d  %d\n", name, stats.Grade(), stats.Health, stats.Speed, stats.Currency)
	}
	return nil
}
