// Package runner implements the Paper Runner simulation: an endless runner
// where the player jumps past obstacles and collects paper and coins.
package runner

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/core"
	"github.com/vovakirdan/paper-runner/internal/progression"
)

// State is the session's position in the menu/play lifecycle.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Session drives runs against a progression store.
// It owns the world exclusively; callers read it through Snapshot and Render.
type Session struct {
	cfg     config.RunnerConfig
	store   *progression.Store
	logger  *log.Logger
	state   State
	world   World
	spawner *Spawner
	seeds   *rand.Rand
	journal *Journal
	viewW   float64
	viewH   float64

	pending     core.InputFrame
	accumulator time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed makes the sequence of run seeds deterministic. Zero means time based.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		if seed != 0 {
			s.seeds = rand.New(rand.NewSource(seed))
		}
	}
}

// NewSession creates a session in the menu state.
func NewSession(cfg config.RunnerConfig, store *progression.Store, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		store:  store,
		logger: log.New(io.Discard),
		state:  StateMenu,
		seeds:  rand.New(rand.NewSource(time.Now().UnixNano())),
		viewW:  cfg.Viewport.Width,
		viewH:  cfg.Viewport.Height,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.spawner = NewSpawner(0, cfg.Obstacles, cfg.Items)
	s.world = newWorld(&s.cfg, s.viewW, s.viewH, store.MaxHealth(), store.GameSpeed())
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Store returns the progression store backing the session.
func (s *Session) Store() *progression.Store {
	return s.store
}

// Config returns the session's configuration.
func (s *Session) Config() config.RunnerConfig {
	return s.cfg
}

// Journal returns the journal of the current or last run, or nil before the first run.
func (s *Session) Journal() *Journal {
	return s.journal
}

// Start begins a run from the menu with a fresh seed.
func (s *Session) Start() bool {
	return s.StartWithSeed(s.seeds.Int63())
}

// StartWithSeed begins a run from the menu using seed for all spawn randomness.
// Score, coins, entities and timers reset; max health and speed are derived
// from the current progression stats.
func (s *Session) StartWithSeed(seed int64) bool {
	if s.state != StateMenu {
		return false
	}

	stats := s.store.Stats()
	s.world = newWorld(&s.cfg, s.viewW, s.viewH, s.store.MaxHealth(), s.store.GameSpeed())
	s.spawner.Reset(seed)
	s.pending.Clear()
	s.accumulator = 0
	s.journal = &Journal{
		Seed:  seed,
		Stats: stats,
		ViewW: s.viewW,
		ViewH: s.viewH,
	}
	s.state = StatePlaying

	s.logger.Debug("run started", "seed", seed, "health", s.world.MaxHealth, "speed", s.world.Speed)
	return true
}

// TogglePause switches between playing and paused.
func (s *Session) TogglePause() bool {
	switch s.state {
	case StatePlaying:
		s.state = StatePaused
	case StatePaused:
		s.state = StatePlaying
		s.accumulator = 0
	default:
		return false
	}
	s.logger.Debug("pause toggled", "state", s.state)
	return true
}

// ReturnToMenu leaves the game-over screen.
func (s *Session) ReturnToMenu() bool {
	if s.state != StateGameOver {
		return false
	}
	s.state = StateMenu
	return true
}

// Resize changes the viewport. The ground line follows the new height.
func (s *Session) Resize(w, h float64) {
	if w <= 0 || h <= 0 || (w == s.viewW && h == s.viewH) {
		return
	}
	s.viewW, s.viewH = w, h

	if s.state == StatePlaying || s.state == StatePaused {
		resizeWorld(&s.world, &s.cfg, w, h)
		s.journal.recordResize(w, h)
	}
}

func resizeWorld(w *World, cfg *config.RunnerConfig, viewW, viewH float64) {
	oldGround := w.GroundY
	w.ViewW, w.ViewH = viewW, viewH
	w.GroundY = viewH - cfg.Viewport.GroundMargin
	w.Player.regroup(cfg.Player, oldGround, w.GroundY)
}

// Step runs exactly one frame. It does nothing unless the session is playing.
func (s *Session) Step(in core.InputFrame) {
	if s.state != StatePlaying {
		return
	}

	s.journal.record(in)
	if stepWorld(&s.world, &s.cfg, s.spawner, in) {
		s.gameOver()
	}
}

// Advance runs as many fixed frames as dt covers, capped at max_catch_up.
// Input is held until the next frame actually runs, so short ticks never drop it.
func (s *Session) Advance(dt time.Duration, in core.InputFrame) int {
	if s.state != StatePlaying {
		return 0
	}

	s.pending.Set(in.Bits)
	frame := time.Second / time.Duration(s.cfg.Timing.TickRate)
	s.accumulator += dt

	steps := 0
	for s.accumulator >= frame && steps < s.cfg.Timing.MaxCatchUp && s.state == StatePlaying {
		s.Step(s.pending)
		s.pending.Clear()
		s.accumulator -= frame
		steps++
	}

	// Drop any backlog beyond the catch-up cap instead of spiralling
	if s.accumulator >= frame {
		s.accumulator = 0
	}
	return steps
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	s.journal.finish(s.world.Score, s.world.Coins)

	// Store logs save failures itself
	_ = s.store.Deposit(s.world.Coins)

	s.logger.Info("game over",
		"score", s.world.Score,
		"coins", s.world.Coins,
		"frames", s.world.Frame,
		"currency", s.store.Stats().Currency,
	)
}

// Snapshot is a read-only view of the session for HUDs, tests and replays.
type Snapshot struct {
	State      State
	Frame      int
	Score      int
	Coins      int
	Health     int
	MaxHealth  int
	Speed      float64
	Player     Player
	Obstacles  []Entity
	Items      []Entity
	Invincible bool
	Flash      bool
	GroundY    float64
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	w := &s.world
	return Snapshot{
		State:      s.state,
		Frame:      w.Frame,
		Score:      w.Score,
		Coins:      w.Coins,
		Health:     w.Health,
		MaxHealth:  w.MaxHealth,
		Speed:      w.Speed,
		Player:     w.Player,
		Obstacles:  append([]Entity(nil), w.Obstacles...),
		Items:      append([]Entity(nil), w.Items...),
		Invincible: w.Invincible,
		Flash:      w.DamageFlash,
		GroundY:    w.GroundY,
	}
}
