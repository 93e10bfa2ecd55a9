package runner

import (
	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/core"
)

// Player is the runner. X is fixed; Y is the top edge and grows downward.
// Jumping and Ducking are never both true.
type Player struct {
	X, Y          float64
	Width, Height float64
	VelocityY     float64
	Jumping       bool
	Ducking       bool
}

func newPlayer(cfg config.PlayerConfig, groundY float64) Player {
	return Player{
		X:      cfg.X,
		Y:      groundY,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// Rect returns the player's collision box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Jump starts a jump with the given (negative) power. Ignored while airborne or ducking.
func (p *Player) Jump(power float64) bool {
	if p.Jumping || p.Ducking {
		return false
	}
	p.VelocityY = power
	p.Jumping = true
	return true
}

// Duck lowers the player's profile. Ignored while airborne.
func (p *Player) Duck(cfg config.PlayerConfig, groundY float64) bool {
	if p.Jumping {
		return false
	}
	p.Ducking = true
	p.Height = cfg.DuckHeight
	p.Y = groundY + cfg.DuckOffset
	return true
}

// Stand restores the full height. Ignored unless ducking.
func (p *Player) Stand(cfg config.PlayerConfig, groundY float64) bool {
	if !p.Ducking {
		return false
	}
	p.Ducking = false
	p.Height = cfg.Height
	p.Y = groundY
	return true
}

// integrate applies one frame of gravity while jumping and lands the player
// once it reaches the ground.
func (p *Player) integrate(gravity, groundY float64) {
	if !p.Jumping {
		return
	}
	p.VelocityY += gravity
	p.Y += p.VelocityY

	if p.Y >= groundY {
		p.Y = groundY
		p.VelocityY = 0
		p.Jumping = false
	}
}

// regroup moves the player onto a new ground line after a viewport resize.
func (p *Player) regroup(cfg config.PlayerConfig, oldGroundY, groundY float64) {
	switch {
	case p.Jumping:
		p.Y += groundY - oldGroundY
	case p.Ducking:
		p.Y = groundY + cfg.DuckOffset
	default:
		p.Y = groundY
	}
}
