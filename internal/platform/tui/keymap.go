package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command is what a key press asks the front end to do.
type Command int

const (
	CmdNone Command = iota
	CmdJump
	CmdDuck
	CmdPause
	CmdStart
	CmdMenu
	CmdUpgradeHealth
	CmdUpgradeSpeed
	CmdScores
	CmdScreenshot
	CmdQuit
)

// KeyMap defines the runner's key bindings. It doubles as the help.KeyMap
// for the help bar.
type KeyMap struct {
	Jump          key.Binding
	Duck          key.Binding
	Pause         key.Binding
	Start         key.Binding
	Menu          key.Binding
	UpgradeHealth key.Binding
	UpgradeSpeed  key.Binding
	Scores        key.Binding
	Screenshot    key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/up", "jump"),
		),
		Duck: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("down/s", "duck"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		UpgradeHealth: key.NewBinding(
			key.WithKeys("h", "1"),
			key.WithHelp("h", "upgrade health"),
		),
		UpgradeSpeed: key.NewBinding(
			key.WithKeys("v", "2"),
			key.WithHelp("v", "upgrade speed"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Duck, k.Pause, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Duck, k.Pause},
		{k.Start, k.Menu, k.Scores},
		{k.UpgradeHealth, k.UpgradeSpeed},
		{k.Screenshot, k.Quit},
	}
}

// MenuHelp returns the bindings shown on the menu screen.
func (k KeyMap) MenuHelp() []key.Binding {
	return []key.Binding{k.Start, k.UpgradeHealth, k.UpgradeSpeed, k.Scores, k.Quit}
}

// Resolve translates a key message into a command.
func (k KeyMap) Resolve(msg tea.KeyMsg) Command {
	switch {
	case key.Matches(msg, k.Quit):
		return CmdQuit
	case key.Matches(msg, k.Screenshot):
		return CmdScreenshot
	case key.Matches(msg, k.Jump):
		return CmdJump
	case key.Matches(msg, k.Duck):
		return CmdDuck
	case key.Matches(msg, k.Pause):
		return CmdPause
	case key.Matches(msg, k.Start):
		return CmdStart
	case key.Matches(msg, k.Menu):
		return CmdMenu
	case key.Matches(msg, k.UpgradeHealth):
		return CmdUpgradeHealth
	case key.Matches(msg, k.UpgradeSpeed):
		return CmdUpgradeSpeed
	case key.Matches(msg, k.Scores):
		return CmdScores
	}
	return CmdNone
}

type bindingList []key.Binding

func (h bindingList) ShortHelp() []key.Binding  { return h }
func (h bindingList) FullHelp() [][]key.Binding { return [][]key.Binding{h} }
