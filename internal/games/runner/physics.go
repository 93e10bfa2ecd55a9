package runner

import (
	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/core"
)

// World is the mutable simulation state of one run. Step functions take it
// by pointer; nothing here does I/O.
type World struct {
	Frame     int
	ViewW     float64
	ViewH     float64
	GroundY   float64
	Speed     float64
	Player    Player
	Obstacles []Entity
	Items     []Entity

	Score     int
	Coins     int
	Health    int
	MaxHealth int

	Invincible       bool
	InvincibleTimer  int
	DamageFlash      bool
	BackgroundOffset float64
}

// newWorld builds a fresh run for the given viewport and derived stats.
func newWorld(cfg *config.RunnerConfig, viewW, viewH float64, maxHealth int, speed float64) World {
	groundY := viewH - cfg.Viewport.GroundMargin
	return World{
		ViewW:     viewW,
		ViewH:     viewH,
		GroundY:   groundY,
		Speed:     speed,
		Player:    newPlayer(cfg.Player, groundY),
		Obstacles: make([]Entity, 0, 8),
		Items:     make([]Entity, 0, 8),
		Health:    maxHealth,
		MaxHealth: maxHealth,
	}
}

// applyInput maps one frame's actions onto the player. The player's own
// guards drop impossible combinations (jump while ducking, duck mid-air).
func applyInput(w *World, cfg *config.RunnerConfig, in core.InputFrame) {
	if in.Has(core.ActionStand) {
		w.Player.Stand(cfg.Player, w.GroundY)
	}
	if in.Has(core.ActionJump) {
		w.Player.Jump(cfg.Physics.JumpPower)
	}
	if in.Has(core.ActionDuck) {
		w.Player.Duck(cfg.Player, w.GroundY)
	}
}

// scrollBackground advances the cosmetic parallax offset.
func scrollBackground(w *World) {
	w.BackgroundOffset += w.Speed
	if w.BackgroundOffset > w.ViewW {
		w.BackgroundOffset = 0
	}
}

// tickInvincibility counts down the post-hit window and updates the flash phase.
func tickInvincibility(w *World, cfg *config.RunnerConfig) {
	if !w.Invincible {
		return
	}
	w.InvincibleTimer--
	w.DamageFlash = (w.InvincibleTimer/cfg.Combat.FlashPeriod)%2 == 0
	if w.InvincibleTimer <= 0 {
		w.Invincible = false
		w.DamageFlash = false
	}
}

// moveEntities shifts every entity left by the current game speed.
func moveEntities(entities []Entity, speed float64) {
	for i := range entities {
		entities[i].X -= speed
	}
}

// collideObstacles applies damage for the first obstacle touching the player
// outside an invincibility window. Obstacles are not removed on hit. It
// reports whether the hit emptied the health pool.
func collideObstacles(w *World, cfg *config.RunnerConfig) bool {
	player := w.Player.Rect()
	for _, o := range w.Obstacles {
		if w.Invincible {
			break
		}
		if !player.Intersects(o.Rect()) {
			continue
		}
		w.Health -= cfg.Combat.Damage
		w.Invincible = true
		w.InvincibleTimer = cfg.Combat.InvincibilityFrames
		if w.Health <= 0 {
			w.Health = 0
			return true
		}
	}
	return false
}

// collectItems removes every item touching the player and applies its reward.
func collectItems(w *World, cfg *config.RunnerConfig) {
	player := w.Player.Rect()
	kept := w.Items[:0]
	for _, it := range w.Items {
		if !player.Intersects(it.Rect()) {
			kept = append(kept, it)
			continue
		}
		switch it.Kind {
		case KindPaper:
			w.Score += cfg.Items.PaperBonus
		case KindCoin:
			w.Coins++
		}
	}
	w.Items = kept
}

// prune drops entities whose right edge has passed the cutoff.
func prune(entities []Entity, cutoff float64) []Entity {
	kept := entities[:0]
	for _, e := range entities {
		if e.X+e.Width >= cutoff {
			kept = append(kept, e)
		}
	}
	return kept
}

// stepWorld runs one frame of the simulation and reports whether the run ended.
func stepWorld(w *World, cfg *config.RunnerConfig, sp *Spawner, in core.InputFrame) bool {
	applyInput(w, cfg, in)

	w.Frame++
	w.Score++
	scrollBackground(w)
	tickInvincibility(w, cfg)
	w.Player.integrate(cfg.Physics.Gravity, w.GroundY)

	sp.Tick(w.ViewW, w.GroundY, func(e Entity) {
		if e.Item() {
			w.Items = append(w.Items, e)
		} else {
			w.Obstacles = append(w.Obstacles, e)
		}
	})

	moveEntities(w.Obstacles, w.Speed)
	dead := collideObstacles(w, cfg)
	w.Obstacles = prune(w.Obstacles, cfg.Obstacles.Cutoff)
	if dead {
		return true
	}

	moveEntities(w.Items, w.Speed)
	collectItems(w, cfg)
	w.Items = prune(w.Items, cfg.Items.Cutoff)
	return false
}
