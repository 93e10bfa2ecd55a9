package config

import (
	"errors"
	"fmt"
)

// Validate reports every constant that would make the simulation degenerate.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Viewport.Width > 0, "viewport.width must be positive, got %v", c.Viewport.Width)
	check(c.Viewport.Height > 0, "viewport.height must be positive, got %v", c.Viewport.Height)
	check(c.Viewport.GroundMargin >= 0, "viewport.ground_margin must not be negative, got %v", c.Viewport.GroundMargin)
	check(c.Viewport.CellWidth > 0, "viewport.cell_width must be positive, got %v", c.Viewport.CellWidth)
	check(c.Viewport.CellHeight > 0, "viewport.cell_height must be positive, got %v", c.Viewport.CellHeight)

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpPower < 0, "physics.jump_power must be negative (upward), got %v", c.Physics.JumpPower)

	check(c.Player.Width > 0, "player.width must be positive, got %v", c.Player.Width)
	check(c.Player.Height > 0, "player.height must be positive, got %v", c.Player.Height)
	check(c.Player.DuckHeight > 0 && c.Player.DuckHeight <= c.Player.Height,
		"player.duck_height must be in (0, height], got %v", c.Player.DuckHeight)

	check(c.Obstacles.Interval > 0, "obstacles.interval must be positive, got %d", c.Obstacles.Interval)
	check(c.Obstacles.Width > 0, "obstacles.width must be positive, got %v", c.Obstacles.Width)
	check(c.Obstacles.GroundHeight > 0, "obstacles.ground_height must be positive, got %v", c.Obstacles.GroundHeight)
	check(c.Obstacles.AirHeight > 0, "obstacles.air_height must be positive, got %v", c.Obstacles.AirHeight)
	check(c.Obstacles.AirChance >= 0 && c.Obstacles.AirChance <= 1,
		"obstacles.air_chance must be in [0, 1], got %v", c.Obstacles.AirChance)

	check(c.Items.Interval > 0, "items.interval must be positive, got %d", c.Items.Interval)
	check(c.Items.Size > 0, "items.size must be positive, got %v", c.Items.Size)
	check(c.Items.CoinChance >= 0 && c.Items.CoinChance <= 1,
		"items.coin_chance must be in [0, 1], got %v", c.Items.CoinChance)
	check(c.Items.PaperBonus >= 0, "items.paper_bonus must not be negative, got %d", c.Items.PaperBonus)

	check(c.Combat.Damage > 0, "combat.damage must be positive, got %d", c.Combat.Damage)
	check(c.Combat.InvincibilityFrames >= 0, "combat.invincibility_frames must not be negative, got %d", c.Combat.InvincibilityFrames)
	check(c.Combat.FlashPeriod > 0, "combat.flash_period must be positive, got %d", c.Combat.FlashPeriod)

	check(c.Progression.UpgradePrice > 0, "progression.upgrade_price must be positive, got %d", c.Progression.UpgradePrice)
	check(c.Progression.BaseHealth > 0, "progression.base_health must be positive, got %d", c.Progression.BaseHealth)
	check(c.Progression.HealthPerLevel >= 0, "progression.health_per_level must not be negative, got %d", c.Progression.HealthPerLevel)
	check(c.Progression.BaseSpeed > 0, "progression.base_speed must be positive, got %v", c.Progression.BaseSpeed)
	check(c.Progression.SpeedPerLevel >= 0, "progression.speed_per_level must not be negative, got %v", c.Progression.SpeedPerLevel)

	check(c.Timing.TickRate > 0, "timing.tick_rate must be positive, got %d", c.Timing.TickRate)
	check(c.Timing.MaxCatchUp > 0, "timing.max_catch_up must be positive, got %d", c.Timing.MaxCatchUp)
	check(c.Timing.DuckHold > 0, "timing.duck_hold must be positive, got %d", c.Timing.DuckHold)

	return errors.Join(errs...)
}
