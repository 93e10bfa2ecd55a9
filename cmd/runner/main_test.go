package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/progression"
	"github.com/vovakirdan/paper-runner/internal/storage"
)

// useTempFlags points the global flags at a scratch home, database and log file.
func useTempFlags(t *testing.T) (dbPath, logPath string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	oldDB, oldLog, oldLevel, oldProfile, oldFPS := flagDBPath, flagLogFile, flagLogLevel, flagProfile, flagFPS
	t.Cleanup(func() {
		flagDBPath, flagLogFile, flagLogLevel, flagProfile, flagFPS = oldDB, oldLog, oldLevel, oldProfile, oldFPS
	})

	flagDBPath = filepath.Join(dir, "runner.db")
	flagLogFile = filepath.Join(dir, "logs", "runner.log")
	flagLogLevel = "debug"
	flagProfile = "tester"
	flagFPS = 0
	return flagDBPath, flagLogFile
}

func TestLoadConfigReturnsErrors(t *testing.T) {
	useTempFlags(t)

	tests := []struct {
		name       string
		path       string
		difficulty string
		fps        int
		expected   string
	}{
		{"unknown difficulty", "", "nightmare", 0, "unknown difficulty"},
		{"missing file", filepath.Join(t.TempDir(), "missing.yaml"), "", 0, "missing.yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flagFPS = tc.fps
			_, err := loadConfig(tc.path, tc.difficulty)
			if err == nil || !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("loadConfig() = %v, expected an error containing %q", err, tc.expected)
			}
		})
	}

	flagFPS = 30
	cfg, err := loadConfig("", "hard")
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Timing.TickRate != 30 {
		t.Errorf("TickRate = %d, expected --fps override 30", cfg.Timing.TickRate)
	}
	if cfg.Combat.Damage != 2*config.DefaultRunnerConfig().Combat.Damage {
		t.Errorf("Damage = %d, expected hard preset to double it", cfg.Combat.Damage)
	}
}

func TestUpgradeFailureReturnsError(t *testing.T) {
	_, logPath := useTempFlags(t)

	err := runUpgrade(nil, []string{"health"})
	if err == nil || !strings.Contains(err.Error(), "need 100 coins") {
		t.Fatalf("runUpgrade() = %v, expected an insufficient funds error", err)
	}

	if _, statErr := os.Stat(logPath); statErr != nil {
		t.Errorf("log file not created: %v", statErr)
	}

	if err := runUpgrade(nil, []string{"armor"}); !errors.Is(err, progression.ErrUnknownStat) {
		t.Errorf("runUpgrade(armor) = %v, expected ErrUnknownStat", err)
	}
}

func TestUpgradeSpendsCoins(t *testing.T) {
	dbPath, _ := useTempFlags(t)

	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := db.Profile("tester").Save(progression.Stats{Health: 1, Speed: 1, Currency: 150}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	db.Close()

	if err := runUpgrade(nil, []string{"speed"}); err != nil {
		t.Fatalf("runUpgrade() failed: %v", err)
	}

	db, err = storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()
	stats, err := db.Profile("tester").Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if stats.Speed != 2 || stats.Currency != 50 {
		t.Errorf("stats = %+v, expected speed 2 and 50 coins", stats)
	}
}

func TestReplayMissingFileReturnsError(t *testing.T) {
	useTempFlags(t)
	if err := runReplay(nil, []string{filepath.Join(t.TempDir(), "nope.replay")}); err == nil {
		t.Error("runReplay() of a missing file = nil, expected an error")
	}
}
