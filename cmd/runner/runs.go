package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagRunsLimit int
	flagRunsTop   bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show run history for a profile",
	Long: `Display the most recent runs, or the best ones with --top.

Examples:
  runner runs
  runner runs --top --limit 5
  runner runs --clear`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTop, "top", false, "Order by score instead of date")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the profile's run history")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := openDB()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(flagProfile); err != nil {
			return err
		}
		fmt.Printf("Run history cleared for %s\n", flagProfile)
		return nil
	}

	title := "Recent Runs"
	fetch := store.RecentRuns
	if flagRunsTop {
		title = "Best Runs"
		fetch = store.TopRuns
	}

	runs, err := fetch(flagProfile, flagRunsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", title, flagProfile)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to record the first run!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %s\n", "#", "Score", "Coins", "Frames", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %s\n", "----", "-----", "-----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6d  %-7d  %s\n",
			i+1, r.Score, r.Coins, r.Frames, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(flagProfile); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
