package runner

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/core"
	"github.com/vovakirdan/paper-runner/internal/progression"
)

func newTestSession(cfg config.RunnerConfig, stats progression.Stats) (*Session, *progression.MemoryPort) {
	port := progression.NewMemoryPort(stats)
	store := progression.NewStore(port, cfg.Progression, nil)
	return NewSession(cfg, store, WithSeed(1)), port
}

// fragileConfig makes runs short: two hits kill at level 1, every obstacle is
// on the ground and every item is a coin in the player's lane.
func fragileConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Progression.BaseHealth = 1
	cfg.Progression.HealthPerLevel = 10
	cfg.Obstacles.AirChance = 0
	cfg.Items.CoinChance = 1
	cfg.Items.LowOffset = -20
	cfg.Items.HighOffset = -20
	return cfg
}

func runUntilOver(t *testing.T, s *Session, limit int) {
	t.Helper()
	for i := 0; i < limit && s.State() == StatePlaying; i++ {
		s.Step(core.InputFrame{})
	}
	if s.State() != StateGameOver {
		t.Fatalf("State() = %v after %d frames, expected gameover", s.State(), limit)
	}
}

func TestSessionTransitions(t *testing.T) {
	s, _ := newTestSession(config.DefaultRunnerConfig(), progression.DefaultStats())

	if s.State() != StateMenu {
		t.Fatalf("initial State() = %v, expected menu", s.State())
	}
	if s.TogglePause() {
		t.Error("TogglePause() in menu = true, expected false")
	}
	if s.ReturnToMenu() {
		t.Error("ReturnToMenu() in menu = true, expected false")
	}

	if !s.Start() {
		t.Fatal("Start() from menu = false, expected true")
	}
	if s.Start() {
		t.Error("Start() while playing = true, expected false")
	}

	s.Step(core.InputFrame{})
	if !s.TogglePause() || s.State() != StatePaused {
		t.Fatalf("State() = %v after TogglePause(), expected paused", s.State())
	}
	s.Step(core.InputFrame{})
	if n := s.Advance(time.Second, core.InputFrame{}); n != 0 {
		t.Errorf("Advance() while paused = %d steps, expected 0", n)
	}
	if s.Snapshot().Frame != 1 {
		t.Errorf("Frame = %d while paused, expected 1", s.Snapshot().Frame)
	}
	if s.ReturnToMenu() {
		t.Error("ReturnToMenu() while paused = true, expected false")
	}

	if !s.TogglePause() || s.State() != StatePlaying {
		t.Fatalf("State() = %v after resume, expected playing", s.State())
	}
}

func TestGameOverDepositsCoins(t *testing.T) {
	s, port := newTestSession(fragileConfig(), progression.Stats{Health: 1, Speed: 1, Currency: 40})
	s.Start()
	if s.Snapshot().MaxHealth != 11 {
		t.Fatalf("MaxHealth = %d, expected 11", s.Snapshot().MaxHealth)
	}

	runUntilOver(t, s, 2000)

	snap := s.Snapshot()
	if snap.Health != 0 {
		t.Errorf("Health = %d at game over, expected 0", snap.Health)
	}
	if snap.Coins == 0 {
		t.Fatal("Coins = 0, expected the lane coin to be collected before the first obstacle")
	}
	if snap.Score != snap.Frame {
		t.Errorf("Score = %d, expected one point per frame (%d) with no paper", snap.Score, snap.Frame)
	}

	expected := 40 + snap.Coins
	if got := s.Store().Stats().Currency; got != expected {
		t.Errorf("Currency = %d, expected %d", got, expected)
	}
	if port.Saved.Currency != expected || port.Saves != 1 {
		t.Errorf("persisted = %+v after %d saves, expected currency %d after 1", port.Saved, port.Saves, expected)
	}

	// Terminal until returned to menu
	s.Step(core.InputFrame{})
	if s.Snapshot().Frame != snap.Frame {
		t.Error("Step() after game over advanced the frame")
	}
	if s.Store().Stats().Currency != expected {
		t.Error("coins deposited more than once")
	}

	j := s.Journal()
	if !j.Finished || j.Score != snap.Score || j.Coins != snap.Coins || len(j.Inputs) != snap.Frame {
		t.Errorf("journal = {finished:%v score:%d coins:%d inputs:%d}, expected {true %d %d %d}",
			j.Finished, j.Score, j.Coins, len(j.Inputs), snap.Score, snap.Coins, snap.Frame)
	}

	if !s.ReturnToMenu() || s.State() != StateMenu {
		t.Fatalf("State() = %v after ReturnToMenu(), expected menu", s.State())
	}
}

func TestStartResetsRun(t *testing.T) {
	s, _ := newTestSession(fragileConfig(), progression.Stats{Health: 1, Speed: 1, Currency: 0})
	s.Start()
	runUntilOver(t, s, 2000)
	s.ReturnToMenu()

	// Upgrades between runs feed the next run's derived stats
	if err := s.Store().Deposit(200); err != nil {
		t.Fatalf("Deposit() failed: %v", err)
	}
	if err := s.Store().Upgrade(progression.StatHealth); err != nil {
		t.Fatalf("Upgrade() failed: %v", err)
	}
	if err := s.Store().Upgrade(progression.StatSpeed); err != nil {
		t.Fatalf("Upgrade() failed: %v", err)
	}

	s.Start()
	snap := s.Snapshot()
	if snap.Score != 0 || snap.Coins != 0 || snap.Frame != 0 {
		t.Errorf("new run = {score:%d coins:%d frame:%d}, expected zeros", snap.Score, snap.Coins, snap.Frame)
	}
	if len(snap.Obstacles) != 0 || len(snap.Items) != 0 {
		t.Error("entities carried over into the new run")
	}
	if snap.MaxHealth != 21 || snap.Health != 21 {
		t.Errorf("Health = %d/%d, expected 21/21", snap.Health, snap.MaxHealth)
	}
	if snap.Speed != 3.6 {
		t.Errorf("Speed = %v, expected 3.6", snap.Speed)
	}
	if len(s.Journal().Inputs) != 0 {
		t.Error("journal not reset on Start()")
	}
}

func TestSessionDeterminism(t *testing.T) {
	script := func(frame int) core.InputFrame {
		switch {
		case frame%45 == 0:
			return core.NewInputFrame(core.ActionJump)
		case frame%97 == 0:
			return core.NewInputFrame(core.ActionDuck)
		case frame%97 == 20:
			return core.NewInputFrame(core.ActionStand)
		}
		return core.InputFrame{}
	}

	run := func() Snapshot {
		s, _ := newTestSession(config.DefaultRunnerConfig(), progression.DefaultStats())
		s.StartWithSeed(42)
		for f := 1; f <= 1500 && s.State() == StatePlaying; f++ {
			s.Step(script(f))
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("runs with the same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestAdvance(t *testing.T) {
	t.Run("one frame", func(t *testing.T) {
		s, _ := newTestSession(config.DefaultRunnerConfig(), progression.DefaultStats())
		s.Start()
		if n := s.Advance(time.Second/60, core.InputFrame{}); n != 1 {
			t.Errorf("Advance(1/60s) = %d, expected 1", n)
		}
	})

	t.Run("catch up is capped", func(t *testing.T) {
		s, _ := newTestSession(config.DefaultRunnerConfig(), progression.DefaultStats())
		s.Start()
		if n := s.Advance(time.Second, core.InputFrame{}); n != 5 {
			t.Errorf("Advance(1s) = %d, expected 5", n)
		}
		if n := s.Advance(0, core.InputFrame{}); n != 0 {
			t.Errorf("Advance(0) after cap = %d, expected backlog dropped", n)
		}
		if s.Snapshot().Frame != 5 {
			t.Errorf("Frame = %d, expected 5", s.Snapshot().Frame)
		}
	})

	t.Run("input held for next frame", func(t *testing.T) {
		s, _ := newTestSession(config.DefaultRunnerConfig(), progression.DefaultStats())
		s.Start()
		if n := s.Advance(8*time.Millisecond, core.NewInputFrame(core.ActionJump)); n != 0 {
			t.Fatalf("Advance(8ms) = %d, expected 0", n)
		}
		if s.Snapshot().Player.Jumping {
			t.Fatal("jump applied before a frame ran")
		}
		if n := s.Advance(9*time.Millisecond, core.InputFrame{}); n != 1 {
			t.Fatalf("Advance(9ms) = %d, expected 1", n)
		}
		if !s.Snapshot().Player.Jumping {
			t.Error("jump pressed between frames was dropped")
		}
		if s.Journal().Inputs[0] != core.ActionJump {
			t.Errorf("journal input = %v, expected jump", s.Journal().Inputs[0])
		}
	})
}

func TestResize(t *testing.T) {
	s, _ := newTestSession(config.DefaultRunnerConfig(), progression.DefaultStats())

	s.Resize(1000, 600)
	s.Start()
	if got := s.Snapshot().GroundY; got != 400 {
		t.Errorf("GroundY after menu resize = %v, expected 400", got)
	}
	if len(s.Journal().Resizes) != 0 {
		t.Error("menu resize recorded in journal")
	}
	if s.Journal().ViewW != 1000 || s.Journal().ViewH != 600 {
		t.Errorf("journal viewport = %vx%v, expected 1000x600", s.Journal().ViewW, s.Journal().ViewH)
	}

	s.Step(core.InputFrame{})
	s.Resize(800, 480)
	snap := s.Snapshot()
	if snap.GroundY != 280 || snap.Player.Y != 280 {
		t.Errorf("GroundY = %v Player.Y = %v, expected 280 280", snap.GroundY, snap.Player.Y)
	}
	ev := s.Journal().Resizes
	if len(ev) != 1 || ev[0] != (ResizeEvent{Frame: 1, Width: 800, Height: 480}) {
		t.Errorf("Resizes = %+v, expected one event at frame 1", ev)
	}

	s.Resize(800, 480)
	if len(s.Journal().Resizes) != 1 {
		t.Error("same-size resize recorded")
	}
}

func TestRender(t *testing.T) {
	s, _ := newTestSession(config.DefaultRunnerConfig(), progression.DefaultStats())

	small := core.NewScreen(80, 10)
	s.Render(small)
	if !strings.Contains(small.String(), "TERMINAL TOO SMALL") {
		t.Error("small terminal notice missing")
	}

	screen := core.NewScreen(80, 24)
	s.Render(screen)
	if !strings.Contains(screen.String(), "Grade F") {
		t.Errorf("menu missing grade:\n%s", screen.String())
	}

	s.Start()
	s.Step(core.InputFrame{})
	s.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "HP: 110/110") || !strings.Contains(out, "Score: 1") {
		t.Errorf("HUD missing:\n%s", out)
	}
	if !strings.ContainsRune(out, PlayerChar) {
		t.Error("player not drawn")
	}

	s.TogglePause()
	s.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func TestFragileConfigIsValid(t *testing.T) {
	if err := fragileConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, expected the short-run config to be valid", err)
	}
}

func TestRenderKeepsGroundOnScreen(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Viewport.GroundMargin = 0 // obstacle bases fall below the viewport

	s, _ := newTestSession(cfg, progression.DefaultStats())
	s.Start()
	screen := core.NewScreen(80, 24)
	s.Render(screen)

	if !strings.ContainsRune(screen.Row(22), GroundChar) {
		t.Errorf("ground line missing from row 22:\n%s", screen.String())
	}
}
