package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded RunnerConfig
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded YAML failed to parse: %v", err)
	}

	if embedded != DefaultRunnerConfig() {
		t.Errorf("embedded defaults differ from DefaultRunnerConfig():\n%+v\n%+v", embedded, DefaultRunnerConfig())
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadCustomYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("combat:\n  damage: 25\nitems:\n  paper_bonus: 75\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Combat.Damage != 25 {
		t.Errorf("Combat.Damage = %d, expected 25", cfg.Combat.Damage)
	}
	if cfg.Items.PaperBonus != 75 {
		t.Errorf("Items.PaperBonus = %d, expected 75", cfg.Items.PaperBonus)
	}
	if cfg.Physics.Gravity != 0.8 {
		t.Errorf("Physics.Gravity = %v, expected default 0.8", cfg.Physics.Gravity)
	}
	if cfg.Combat.InvincibilityFrames != 60 {
		t.Errorf("Combat.InvincibilityFrames = %d, expected default 60", cfg.Combat.InvincibilityFrames)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.toml")
	data := []byte("[physics]\ngravity = 1.2\njump_power = -18.0\n\n[progression]\nupgrade_price = 150\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Physics.Gravity != 1.2 || cfg.Physics.JumpPower != -18 {
		t.Errorf("Physics = %+v, expected gravity 1.2 and jump_power -18", cfg.Physics)
	}
	if cfg.Progression.UpgradePrice != 150 {
		t.Errorf("Progression.UpgradePrice = %d, expected 150", cfg.Progression.UpgradePrice)
	}
	if cfg.Player.Width != 50 {
		t.Errorf("Player.Width = %v, expected default 50", cfg.Player.Width)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [not, a, map]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  jump_power: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "jump_power") {
		t.Errorf("Load() of invalid config should name jump_power, got %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Obstacles.Interval = 0
	cfg.Items.CoinChance = 1.5
	cfg.Timing.TickRate = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, field := range []string{"obstacles.interval", "items.coin_chance", "timing.tick_rate"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error should mention %s, got %v", field, err)
		}
	}
}

func TestValidateRejectsShrinkingStats(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*RunnerConfig)
		field string
	}{
		{"negative health per level", func(c *RunnerConfig) { c.Progression.HealthPerLevel = -10 }, "progression.health_per_level"},
		{"negative speed per level", func(c *RunnerConfig) { c.Progression.SpeedPerLevel = -0.5 }, "progression.speed_per_level"},
		{"zero base health", func(c *RunnerConfig) { c.Progression.BaseHealth = 0 }, "progression.base_health"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.edit(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() = %v, expected an error naming %s", err, tc.field)
			}
		})
	}

	cfg := DefaultRunnerConfig()
	cfg.Progression.HealthPerLevel = 0
	cfg.Progression.SpeedPerLevel = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with flat progression = %v, expected nil", err)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		damage     int
		invincible int
		baseSpeed  float64
	}{
		{DifficultyEasy, 5, 90, 2.4},
		{DifficultyNormal, 10, 60, 3.0},
		{DifficultyHard, 20, 30, 3.9},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)

			if cfg.Combat.Damage != tc.damage {
				t.Errorf("Damage = %d, expected %d", cfg.Combat.Damage, tc.damage)
			}
			if cfg.Combat.InvincibilityFrames != tc.invincible {
				t.Errorf("InvincibilityFrames = %d, expected %d", cfg.Combat.InvincibilityFrames, tc.invincible)
			}
			if diff := cfg.Progression.BaseSpeed - tc.baseSpeed; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("BaseSpeed = %v, expected %v", cfg.Progression.BaseSpeed, tc.baseSpeed)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, ok := ParseDifficulty("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %q, %v", p, ok)
	}
	if _, ok := ParseDifficulty(""); ok {
		t.Error("ParseDifficulty(\"\") should not match a preset")
	}
	if _, ok := ParseDifficulty("insane"); ok {
		t.Error("ParseDifficulty(insane) should not match a preset")
	}
}

func TestGroundY(t *testing.T) {
	v := DefaultRunnerConfig().Viewport
	if v.GroundY() != 280 {
		t.Errorf("GroundY() = %v, expected 280", v.GroundY())
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("ExpandHome(/tmp/x.db) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.paper-runner/runner.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".paper-runner", "runner.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
}
