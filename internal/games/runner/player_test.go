package runner

import (
	"testing"

	"github.com/vovakirdan/paper-runner/internal/config"
)

// jumpApex returns the lowest Y (highest point) reached by a jump.
func jumpApex(p Player, cfg config.RunnerConfig, groundY float64) float64 {
	apex := p.Y
	p.Jump(cfg.Physics.JumpPower)
	for p.Jumping {
		p.integrate(cfg.Physics.Gravity, groundY)
		apex = min(apex, p.Y)
	}
	return apex
}

func TestJumpArcReturnsToGround(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	groundY := cfg.Viewport.GroundY()
	p := newPlayer(cfg.Player, groundY)

	if !p.Jump(cfg.Physics.JumpPower) {
		t.Fatal("Jump() from ground = false, expected true")
	}
	if p.VelocityY != cfg.Physics.JumpPower {
		t.Errorf("VelocityY = %v, expected %v", p.VelocityY, cfg.Physics.JumpPower)
	}
	if !p.Jumping {
		t.Error("Jumping = false after Jump()")
	}

	frames := 0
	for p.Jumping && frames < 200 {
		p.integrate(cfg.Physics.Gravity, groundY)
		frames++
		if p.Y > groundY {
			t.Fatalf("frame %d: Y = %v below ground %v", frames, p.Y, groundY)
		}
	}

	// -15 + 0.8k summed over k frames first turns non-negative at k = 37
	if frames != 37 {
		t.Errorf("jump lasted %d frames, expected 37", frames)
	}
	if p.Y != groundY || p.VelocityY != 0 || p.Jumping {
		t.Errorf("after landing = %+v, expected grounded at %v with zero velocity", p, groundY)
	}
}

func TestJumpApex(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	groundY := cfg.Viewport.GroundY()
	apex := jumpApex(newPlayer(cfg.Player, groundY), cfg, groundY)

	// A jump must clear a ground obstacle's top edge
	obstacleTop := groundY + cfg.Obstacles.GroundOffset
	if apex+cfg.Player.Height > obstacleTop {
		t.Errorf("apex bottom %v does not clear obstacle top %v", apex+cfg.Player.Height, obstacleTop)
	}
}

func TestPlayerGuards(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	groundY := cfg.Viewport.GroundY()

	t.Run("no double jump", func(t *testing.T) {
		p := newPlayer(cfg.Player, groundY)
		p.Jump(cfg.Physics.JumpPower)
		p.integrate(cfg.Physics.Gravity, groundY)
		v := p.VelocityY
		if p.Jump(cfg.Physics.JumpPower) {
			t.Error("Jump() in air = true, expected false")
		}
		if p.VelocityY != v {
			t.Errorf("VelocityY = %v, expected unchanged %v", p.VelocityY, v)
		}
	})

	t.Run("no duck in air", func(t *testing.T) {
		p := newPlayer(cfg.Player, groundY)
		p.Jump(cfg.Physics.JumpPower)
		if p.Duck(cfg.Player, groundY) {
			t.Error("Duck() in air = true, expected false")
		}
		if p.Ducking {
			t.Error("Ducking = true while jumping")
		}
	})

	t.Run("no jump while ducking", func(t *testing.T) {
		p := newPlayer(cfg.Player, groundY)
		p.Duck(cfg.Player, groundY)
		if p.Jump(cfg.Physics.JumpPower) {
			t.Error("Jump() while ducking = true, expected false")
		}
	})

	t.Run("stand only when ducking", func(t *testing.T) {
		p := newPlayer(cfg.Player, groundY)
		p.Jump(cfg.Physics.JumpPower)
		p.integrate(cfg.Physics.Gravity, groundY)
		y := p.Y
		if p.Stand(cfg.Player, groundY) {
			t.Error("Stand() in air = true, expected false")
		}
		if p.Y != y {
			t.Errorf("Y = %v after Stand() in air, expected %v", p.Y, y)
		}
	})
}

func TestDuckAndStandProfile(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	groundY := cfg.Viewport.GroundY()
	p := newPlayer(cfg.Player, groundY)
	feet := p.Rect().Bottom()

	if !p.Duck(cfg.Player, groundY) {
		t.Fatal("Duck() on ground = false, expected true")
	}
	if p.Height != cfg.Player.DuckHeight || p.Y != groundY+cfg.Player.DuckOffset {
		t.Errorf("ducked = {Y:%v H:%v}, expected {Y:%v H:%v}",
			p.Y, p.Height, groundY+cfg.Player.DuckOffset, cfg.Player.DuckHeight)
	}
	if p.Rect().Bottom() != feet {
		t.Errorf("ducked bottom = %v, expected feet to stay at %v", p.Rect().Bottom(), feet)
	}

	if !p.Stand(cfg.Player, groundY) {
		t.Fatal("Stand() while ducking = false, expected true")
	}
	if p.Height != cfg.Player.Height || p.Y != groundY || p.Ducking {
		t.Errorf("stood = %+v, expected full height at ground", p)
	}
}

func TestRegroup(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	p := newPlayer(cfg.Player, 280)
	p.regroup(cfg.Player, 280, 400)
	if p.Y != 400 {
		t.Errorf("standing Y = %v after regroup, expected 400", p.Y)
	}

	p.Duck(cfg.Player, 400)
	p.regroup(cfg.Player, 400, 300)
	if p.Y != 300+cfg.Player.DuckOffset {
		t.Errorf("ducking Y = %v after regroup, expected %v", p.Y, 300+cfg.Player.DuckOffset)
	}
}
