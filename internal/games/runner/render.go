package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/paper-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	PlayerHead   = '◆'
	GroundChar   = '═'
	GrassChar    = '░'
	ObstacleChar = '▓'
	AirChar      = '▼'
	PaperChar    = '▤'
	CoinChar     = '●'
)

// MinRows is the smallest terminal height the playfield fits in.
const MinRows = 20

// Render draws the session onto dst. Rendering never touches simulation
// state; world units are scaled to the screen's cell grid.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Height() < MinRows {
		drawCenteredMessage(dst, "TERMINAL TOO SMALL", fmt.Sprintf("Need at least %d rows", MinRows))
		return
	}

	if s.state == StateMenu {
		s.renderMenu(dst)
		return
	}

	s.renderWorld(dst)
	s.renderHUD(dst)

	switch s.state {
	case StatePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		w := &s.world
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Coins: +%d  |  ENTER: again  M: menu", w.Score, w.Coins))
	}
}

type projector struct {
	sx, sy float64
}

func newProjector(dst *core.Screen, w *World) projector {
	return projector{
		sx: float64(dst.Width()) / w.ViewW,
		sy: float64(dst.Height()) / w.ViewH,
	}
}

// cells converts a world-space box to a cell box, always at least one cell big.
func (p projector) cells(x, y, width, height float64) (cx, cy, cw, ch int) {
	cx = int(math.Floor(x * p.sx))
	cy = int(math.Floor(y * p.sy))
	cw = max(int(math.Round(width*p.sx)), 1)
	ch = max(int(math.Round(height*p.sy)), 1)
	return
}

func (s *Session) renderWorld(dst *core.Screen) {
	w := &s.world
	proj := newProjector(dst, w)

	// Ground line sits at the base of ground obstacles
	_, groundRow, _, _ := proj.cells(0, w.GroundY+s.cfg.Obstacles.GroundOffset+s.cfg.Obstacles.GroundHeight, 0, 0)
	groundRow = core.Clamp(groundRow, 0, dst.Height()-2)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGreen)
	offset := int(w.BackgroundOffset * proj.sx)
	for x := 0; x < dst.Width(); x++ {
		if (x+offset)%4 == 0 {
			dst.SetColored(x, groundRow+1, GrassChar, core.ColorBrown)
		}
	}

	for _, o := range w.Obstacles {
		x, y, cw, ch := proj.cells(o.X, o.Y, o.Width, o.Height)
		if o.Air {
			dst.Fill(x, y, cw, ch, AirChar, core.ColorOrange)
		} else {
			dst.Fill(x, y, cw, ch, ObstacleChar, core.ColorRed)
		}
	}

	for _, it := range w.Items {
		x, y, cw, ch := proj.cells(it.X, it.Y, it.Width, it.Height)
		switch it.Kind {
		case KindPaper:
			dst.Fill(x, y, cw, ch, PaperChar, core.ColorWhite)
		case KindCoin:
			dst.Fill(x, y, cw, ch, CoinChar, core.ColorBrightYellow)
		}
	}

	// Flash by skipping the player on odd phases
	if w.Invincible && !w.DamageFlash {
		return
	}
	p := w.Player
	x, y, cw, ch := proj.cells(p.X, p.Y, p.Width, p.Height)
	color := core.ColorBrightCyan
	if w.Invincible {
		color = core.ColorBrightRed
	}
	dst.Fill(x, y, cw, ch, PlayerChar, color)
	dst.SetColored(x+cw-1, y, PlayerHead, color)
}

func (s *Session) renderHUD(dst *core.Screen) {
	w := &s.world

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", w.Score))
	dst.DrawTextColored(2, 1, fmt.Sprintf(" Coins: %d ", w.Coins), core.ColorYellow)

	healthColor := core.ColorGreen
	if w.Health*3 <= w.MaxHealth {
		healthColor = core.ColorRed
	}
	hp := fmt.Sprintf(" HP: %d/%d ", w.Health, w.MaxHealth)
	dst.DrawTextColored(dst.Width()-len(hp)-2, 0, hp, healthColor)

	spd := fmt.Sprintf(" Spd: %.1f ", w.Speed)
	dst.DrawText(dst.Width()-len(spd)-2, 1, spd)
}

func (s *Session) renderMenu(dst *core.Screen) {
	stats := s.store.Stats()
	price := s.store.Price()
	top := dst.Height()/2 - 6

	dst.DrawTextCentered(top, "P A P E R   R U N N E R", core.ColorBrightCyan)
	dst.DrawTextCentered(top+2, fmt.Sprintf("Grade %s", s.store.Grade()), core.ColorBrightYellow)
	dst.DrawTextCentered(top+4, fmt.Sprintf("Coins: %d", stats.Currency), core.ColorYellow)
	dst.DrawTextCentered(top+5, fmt.Sprintf("Health Lv %d  (%d HP)", stats.Health, s.store.MaxHealth()), core.ColorDefault)
	dst.DrawTextCentered(top+6, fmt.Sprintf("Speed  Lv %d  (%.1f)", stats.Speed, s.store.GameSpeed()), core.ColorDefault)

	upgradeColor := core.ColorGray
	if stats.Currency >= price {
		upgradeColor = core.ColorBrightGreen
	}
	dst.DrawTextCentered(top+8, fmt.Sprintf("[H] Upgrade health  [V] Upgrade speed  (%d coins)", price), upgradeColor)
	dst.DrawTextCentered(top+10, "Press ENTER to run", core.ColorWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.Fill(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
