package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paper-runner/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded run and check its result",
	Long: `Load a replay written by 'runner play --record', run it through the
simulation again and compare the outcome with what was recorded.

Exits non-zero when the result does not match.

Examples:
  runner replay ~/.paper-runner/replays/1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed.replay`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	f, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s) recorded %s\n", f.RunID, f.Profile, f.RecordedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  Seed %d  |  %d frames  |  view %.0fx%.0f\n", f.Seed, len(f.Inputs), f.ViewW, f.ViewH)

	res, err := replay.Verify(f)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	fmt.Printf("OK: score %d, coins %d after %d frames\n", res.Score, res.Coins, res.Frames)
	return nil
}
