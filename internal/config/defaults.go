package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in Paper Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Viewport: ViewportConfig{
			Width:        800,
			Height:       480,
			GroundMargin: 200,
			CellWidth:    10,
			CellHeight:   20,
		},
		Physics: PhysicsConfig{
			Gravity:   0.8,
			JumpPower: -15,
		},
		Player: PlayerConfig{
			X:          150,
			Width:      50,
			Height:     60,
			DuckHeight: 30,
			DuckOffset: 30,
		},
		Obstacles: ObstacleConfig{
			Interval:     120,
			Width:        40,
			GroundHeight: 60,
			GroundOffset: 20,
			AirHeight:    40,
			AirOffset:    80,
			AirChance:    0.4,
			Cutoff:       -50,
		},
		Items: ItemConfig{
			Interval:   100,
			Size:       30,
			LowOffset:  50,
			HighOffset: 100,
			CoinChance: 0.3,
			PaperBonus: 50,
			Cutoff:     0,
		},
		Combat: CombatConfig{
			Damage:              10,
			InvincibilityFrames: 60,
			FlashPeriod:         5,
		},
		Progression: ProgressionConfig{
			UpgradePrice:   100,
			BaseHealth:     100,
			HealthPerLevel: 10,
			BaseSpeed:      3.0,
			SpeedPerLevel:  0.3,
		},
		Timing: TimingConfig{
			TickRate:   60,
			MaxCatchUp: 5,
			DuckHold:   20,
		},
	}
}

// DefaultYAML returns the embedded default config file, for `runner config`.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
