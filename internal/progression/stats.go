// Package progression owns the persisted meta-progression of a player:
// health level, speed level and total currency, plus the derived grade.
package progression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/paper-runner/internal/config"
)

var (
	// ErrInsufficientFunds is returned by Upgrade when currency is below the price.
	ErrInsufficientFunds = errors.New("progression: not enough coins")
	// ErrUnknownStat is returned for stat names other than health and speed.
	ErrUnknownStat = errors.New("progression: unknown stat")
)

// Stat names an upgradable level.
type Stat string

const (
	StatHealth Stat = "health"
	StatSpeed  Stat = "speed"
)

// ParseStat converts user input into a Stat.
func ParseStat(s string) (Stat, error) {
	switch Stat(strings.ToLower(strings.TrimSpace(s))) {
	case StatHealth:
		return StatHealth, nil
	case StatSpeed:
		return StatSpeed, nil
	default:
		return "", fmt.Errorf("%w %q (want health or speed)", ErrUnknownStat, s)
	}
}

// Stats are the three persisted scalars.
type Stats struct {
	Health   int `msgpack:"health"`
	Speed    int `msgpack:"speed"`
	Currency int `msgpack:"currency"`
}

// DefaultStats is the state of a player who has never played.
func DefaultStats() Stats {
	return Stats{Health: 1, Speed: 1, Currency: 0}
}

// Normalize replaces out-of-range values with their defaults:
// levels below 1 become 1, negative currency becomes 0.
func (s Stats) Normalize() Stats {
	if s.Health < 1 {
		s.Health = 1
	}
	if s.Speed < 1 {
		s.Speed = 1
	}
	if s.Currency < 0 {
		s.Currency = 0
	}
	return s
}

// Grade returns the letter summary of the combined upgrade levels.
func (s Stats) Grade() string {
	return GradeFor(s.Health + s.Speed)
}

// GradeFor maps a level sum to a letter grade.
func GradeFor(total int) string {
	switch {
	case total >= 20:
		return "S"
	case total >= 15:
		return "A"
	case total >= 10:
		return "B"
	case total >= 7:
		return "C"
	case total >= 5:
		return "D"
	default:
		return "F"
	}
}

// MaxHealth derives the run's health pool from the health level.
func (s Stats) MaxHealth(cfg config.ProgressionConfig) int {
	return cfg.BaseHealth + s.Health*cfg.HealthPerLevel
}

// GameSpeed derives the horizontal scroll speed from the speed level.
func (s Stats) GameSpeed(cfg config.ProgressionConfig) float64 {
	return cfg.BaseSpeed + float64(s.Speed)*cfg.SpeedPerLevel
}
