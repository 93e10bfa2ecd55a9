package runner

import "github.com/vovakirdan/paper-runner/internal/core"

// Kind distinguishes what touching an entity does.
type Kind uint8

const (
	KindObstacle Kind = iota // damages the player
	KindPaper                // grants score
	KindCoin                 // grants currency
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindPaper:
		return "paper"
	case KindCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// Entity is a scrolling obstacle or item.
type Entity struct {
	X, Y          float64
	Width, Height float64
	Kind          Kind
	Air           bool // obstacles only: flying rather than on the ground
}

// Rect returns the entity's collision box.
func (e Entity) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, e.Width, e.Height)
}

// Item reports whether the entity is collectible.
func (e Entity) Item() bool {
	return e.Kind == KindPaper || e.Kind == KindCoin
}
