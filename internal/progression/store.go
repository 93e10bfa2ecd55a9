package progression

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/paper-runner/internal/config"
)

// Port is the persistence boundary for progression. Implementations return
// whatever they have stored; the Store normalizes missing or corrupt values.
type Port interface {
	Load() (Stats, error)
	Save(Stats) error
}

// Store is the only component allowed to read or write persisted progression.
type Store struct {
	port   Port
	cfg    config.ProgressionConfig
	stats  Stats
	logger *log.Logger
}

// NewStore loads stats through port. A failed load is logged and the store
// starts from defaults, so a broken save never blocks play.
func NewStore(port Port, cfg config.ProgressionConfig, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Store{port: port, cfg: cfg, logger: logger}

	loaded, err := port.Load()
	if err != nil {
		logger.Warn("could not load progression, using defaults", "error", err)
		loaded = DefaultStats()
	}
	s.stats = loaded.Normalize()
	if s.stats != loaded {
		logger.Warn("progression had invalid values, defaulted", "loaded", loaded, "using", s.stats)
	}
	return s
}

// Stats returns a copy of the current stats.
func (s *Store) Stats() Stats {
	return s.stats
}

// Grade returns the grade for the current levels.
func (s *Store) Grade() string {
	return s.stats.Grade()
}

// Price returns the fixed cost of one upgrade.
func (s *Store) Price() int {
	return s.cfg.UpgradePrice
}

// Config returns the progression tuning the store derives stats with.
func (s *Store) Config() config.ProgressionConfig {
	return s.cfg
}

// MaxHealth derives the session's health pool from the current health level.
func (s *Store) MaxHealth() int {
	return s.stats.MaxHealth(s.cfg)
}

// GameSpeed derives the session's scroll speed from the current speed level.
func (s *Store) GameSpeed() float64 {
	return s.stats.GameSpeed(s.cfg)
}

// Upgrade spends one price worth of currency on the named stat and persists.
// With insufficient funds nothing changes and ErrInsufficientFunds is returned.
func (s *Store) Upgrade(stat Stat) error {
	next := s.stats
	switch stat {
	case StatHealth:
		next.Health++
	case StatSpeed:
		next.Speed++
	default:
		return fmt.Errorf("%w %q", ErrUnknownStat, stat)
	}

	if s.stats.Currency < s.cfg.UpgradePrice {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, s.stats.Currency, s.cfg.UpgradePrice)
	}
	next.Currency -= s.cfg.UpgradePrice

	s.stats = next
	s.logger.Info("upgraded", "stat", stat, "health", next.Health, "speed", next.Speed,
		"coins", next.Currency, "grade", next.Grade())
	return s.persist()
}

// Deposit folds a run's coins into total currency and persists.
func (s *Store) Deposit(coins int) error {
	if coins < 0 {
		coins = 0
	}
	s.stats.Currency += coins
	return s.persist()
}

func (s *Store) persist() error {
	if err := s.port.Save(s.stats); err != nil {
		s.logger.Warn("could not save progression", "error", err)
		return fmt.Errorf("progression: save: %w", err)
	}
	return nil
}

// MemoryPort keeps stats in memory. It backs tests and replay verification.
type MemoryPort struct {
	Saved   Stats
	Saves   int
	LoadErr error
	SaveErr error
}

// NewMemoryPort returns a port preloaded with stats.
func NewMemoryPort(stats Stats) *MemoryPort {
	return &MemoryPort{Saved: stats}
}

// Load returns the preloaded or last saved stats.
func (p *MemoryPort) Load() (Stats, error) {
	if p.LoadErr != nil {
		return Stats{}, p.LoadErr
	}
	return p.Saved, nil
}

// Save records stats.
func (p *MemoryPort) Save(s Stats) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.Saved = s
	p.Saves++
	return nil
}
