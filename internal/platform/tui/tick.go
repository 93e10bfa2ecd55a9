// Package tui provides the Bubble Tea front end for Paper Runner.
// It maps keys to session commands, drives the fixed-step loop from ticks,
// and serves the same model over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. ID identifies the tick
// chain so a stale tick from before a pause never doubles the loop.
type TickMsg struct {
	ID   int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after a frame interval.
func tickCmd(tickRate, id int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
