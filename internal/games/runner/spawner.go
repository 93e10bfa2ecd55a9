package runner

import (
	"math/rand"

	"github.com/vovakirdan/paper-runner/internal/config"
)

// Spawner emits obstacles and items at the right edge of the viewport on two
// independent frame counters.
type Spawner struct {
	obstacleTimer int
	itemTimer     int
	rng           *rand.Rand
	obstacles     config.ObstacleConfig
	items         config.ItemConfig
}

// NewSpawner creates a spawner with its own RNG seeded for one run.
func NewSpawner(seed int64, obstacles config.ObstacleConfig, items config.ItemConfig) *Spawner {
	sp := &Spawner{
		obstacles: obstacles,
		items:     items,
	}
	sp.Reset(seed)
	return sp
}

// Reset clears both counters and reseeds the RNG.
func (sp *Spawner) Reset(seed int64) {
	sp.obstacleTimer = 0
	sp.itemTimer = 0
	sp.rng = rand.New(rand.NewSource(seed))
}

// Tick advances both counters by one frame and calls emit for each entity
// whose counter passed its interval.
func (sp *Spawner) Tick(viewW, groundY float64, emit func(Entity)) {
	sp.obstacleTimer++
	if sp.obstacleTimer > sp.obstacles.Interval {
		emit(sp.spawnObstacle(viewW, groundY))
		sp.obstacleTimer = 0
	}

	sp.itemTimer++
	if sp.itemTimer > sp.items.Interval {
		emit(sp.spawnItem(viewW, groundY))
		sp.itemTimer = 0
	}
}

func (sp *Spawner) spawnObstacle(viewW, groundY float64) Entity {
	o := sp.obstacles
	if sp.rng.Float64() < o.AirChance {
		return Entity{
			X:      viewW,
			Y:      groundY - o.AirOffset,
			Width:  o.Width,
			Height: o.AirHeight,
			Kind:   KindObstacle,
			Air:    true,
		}
	}
	return Entity{
		X:      viewW,
		Y:      groundY + o.GroundOffset,
		Width:  o.Width,
		Height: o.GroundHeight,
		Kind:   KindObstacle,
	}
}

func (sp *Spawner) spawnItem(viewW, groundY float64) Entity {
	it := sp.items

	y := groundY - it.LowOffset
	if sp.rng.Float64() < 0.5 {
		y = groundY - it.HighOffset
	}

	kind := KindPaper
	if sp.rng.Float64() < it.CoinChance {
		kind = KindCoin
	}

	return Entity{
		X:      viewW,
		Y:      y,
		Width:  it.Size,
		Height: it.Size,
		Kind:   kind,
	}
}
