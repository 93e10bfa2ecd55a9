// Package config provides YAML (or TOML) game configuration loading,
// difficulty presets and validation for Paper Runner.
package config

// RunnerConfig contains every tunable constant of the simulation.
// All distances are world units; all durations are frames.
type RunnerConfig struct {
	Viewport    ViewportConfig    `yaml:"viewport" toml:"viewport" msgpack:"viewport"`
	Physics     PhysicsConfig     `yaml:"physics" toml:"physics" msgpack:"physics"`
	Player      PlayerConfig      `yaml:"player" toml:"player" msgpack:"player"`
	Obstacles   ObstacleConfig    `yaml:"obstacles" toml:"obstacles" msgpack:"obstacles"`
	Items       ItemConfig        `yaml:"items" toml:"items" msgpack:"items"`
	Combat      CombatConfig      `yaml:"combat" toml:"combat" msgpack:"combat"`
	Progression ProgressionConfig `yaml:"progression" toml:"progression" msgpack:"progression"`
	Timing      TimingConfig      `yaml:"timing" toml:"timing" msgpack:"timing"`
}

// ViewportConfig defines the world viewport and how it maps to terminal cells.
type ViewportConfig struct {
	Width        float64 `yaml:"width" toml:"width" msgpack:"width"`
	Height       float64 `yaml:"height" toml:"height" msgpack:"height"`
	GroundMargin float64 `yaml:"ground_margin" toml:"ground_margin" msgpack:"ground_margin"` // groundY = height - ground_margin
	CellWidth    float64 `yaml:"cell_width" toml:"cell_width" msgpack:"cell_width"`
	CellHeight   float64 `yaml:"cell_height" toml:"cell_height" msgpack:"cell_height"`
}

// PhysicsConfig defines single-axis gravity.
type PhysicsConfig struct {
	Gravity   float64 `yaml:"gravity" toml:"gravity" msgpack:"gravity"`
	JumpPower float64 `yaml:"jump_power" toml:"jump_power" msgpack:"jump_power"` // negative = up
}

// PlayerConfig defines the player's shape.
type PlayerConfig struct {
	X          float64 `yaml:"x" toml:"x" msgpack:"x"`
	Width      float64 `yaml:"width" toml:"width" msgpack:"width"`
	Height     float64 `yaml:"height" toml:"height" msgpack:"height"`
	DuckHeight float64 `yaml:"duck_height" toml:"duck_height" msgpack:"duck_height"`
	DuckOffset float64 `yaml:"duck_offset" toml:"duck_offset" msgpack:"duck_offset"`
}

// ObstacleConfig defines obstacle spawning and shape.
type ObstacleConfig struct {
	Interval     int     `yaml:"interval" toml:"interval" msgpack:"interval"`
	Width        float64 `yaml:"width" toml:"width" msgpack:"width"`
	GroundHeight float64 `yaml:"ground_height" toml:"ground_height" msgpack:"ground_height"`
	GroundOffset float64 `yaml:"ground_offset" toml:"ground_offset" msgpack:"ground_offset"` // below groundY
	AirHeight    float64 `yaml:"air_height" toml:"air_height" msgpack:"air_height"`
	AirOffset    float64 `yaml:"air_offset" toml:"air_offset" msgpack:"air_offset"` // above groundY
	AirChance    float64 `yaml:"air_chance" toml:"air_chance" msgpack:"air_chance"`
	Cutoff       float64 `yaml:"cutoff" toml:"cutoff" msgpack:"cutoff"`
}

// ItemConfig defines item spawning and rewards.
type ItemConfig struct {
	Interval   int     `yaml:"interval" toml:"interval" msgpack:"interval"`
	Size       float64 `yaml:"size" toml:"size" msgpack:"size"`
	LowOffset  float64 `yaml:"low_offset" toml:"low_offset" msgpack:"low_offset"`
	HighOffset float64 `yaml:"high_offset" toml:"high_offset" msgpack:"high_offset"`
	CoinChance float64 `yaml:"coin_chance" toml:"coin_chance" msgpack:"coin_chance"`
	PaperBonus int     `yaml:"paper_bonus" toml:"paper_bonus" msgpack:"paper_bonus"`
	Cutoff     float64 `yaml:"cutoff" toml:"cutoff" msgpack:"cutoff"`
}

// CombatConfig defines the damage model.
type CombatConfig struct {
	Damage              int `yaml:"damage" toml:"damage" msgpack:"damage"`
	InvincibilityFrames int `yaml:"invincibility_frames" toml:"invincibility_frames" msgpack:"invincibility_frames"`
	FlashPeriod         int `yaml:"flash_period" toml:"flash_period" msgpack:"flash_period"`
}

// ProgressionConfig defines upgrade pricing and how levels turn into stats.
type ProgressionConfig struct {
	UpgradePrice   int     `yaml:"upgrade_price" toml:"upgrade_price" msgpack:"upgrade_price"`
	BaseHealth     int     `yaml:"base_health" toml:"base_health" msgpack:"base_health"`
	HealthPerLevel int     `yaml:"health_per_level" toml:"health_per_level" msgpack:"health_per_level"`
	BaseSpeed      float64 `yaml:"base_speed" toml:"base_speed" msgpack:"base_speed"`
	SpeedPerLevel  float64 `yaml:"speed_per_level" toml:"speed_per_level" msgpack:"speed_per_level"`
}

// TimingConfig defines the frame clock and front-end input timing.
type TimingConfig struct {
	TickRate   int `yaml:"tick_rate" toml:"tick_rate" msgpack:"tick_rate"`
	MaxCatchUp int `yaml:"max_catch_up" toml:"max_catch_up" msgpack:"max_catch_up"` // max steps per Advance
	DuckHold   int `yaml:"duck_hold" toml:"duck_hold" msgpack:"duck_hold"`          // frames a duck press lasts
}

// GroundY returns the standing player's top edge for the configured viewport.
func (v ViewportConfig) GroundY() float64 {
	return v.Height - v.GroundMargin
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value to a preset. Empty or unknown values
// return false so the loaded config is used as is.
func ParseDifficulty(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// ApplyPreset rescales combat and speed constants for a difficulty preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Combat.Damage = max(cfg.Combat.Damage/2, 1)
		cfg.Combat.InvincibilityFrames += cfg.Combat.InvincibilityFrames / 2
		cfg.Progression.BaseSpeed *= 0.8
	case DifficultyHard:
		cfg.Combat.Damage *= 2
		cfg.Combat.InvincibilityFrames /= 2
		cfg.Progression.BaseSpeed *= 1.3
	}
}
