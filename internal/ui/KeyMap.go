package ui

import (
	"github.com/Mshel/tetrad/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Down     key.Binding
	Rotate   key.Binding
	Drop     key.Binding
	NewGame  key.Binding
	Autoplay key.Binding
	Quit     key.Binding
}

var defaultKeys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "a", "h"),
		key.WithHelp("←/a/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "d", "l"),
		key.WithHelp("→/d/l", "right"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "s", "j"),
		key.WithHelp("↓/s/j", "soft drop"),
	),
	Rotate: key.NewBinding(
		key.WithKeys("up", "w", "k"),
		key.WithHelp("↑/w/k", "rotate"),
	),
	Drop: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "hard drop"),
	),
	NewGame: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new game"),
	),
	Autoplay: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "autopilot"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q/esc", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rotate, k.Drop, k.NewGame, k.Autoplay, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Down, k.Rotate},
		{k.Drop, k.NewGame, k.Autoplay, k.Quit},
	}
}

// commandFor maps a key press to the game command it triggers.
func (k keyMap) commandFor(msg tea.KeyMsg) game.Command {
	switch {
	case key.Matches(msg, k.Left):
		return game.CommandMoveLeft
	case key.Matches(msg, k.Right):
		return game.CommandMoveRight
	case key.Matches(msg, k.Down):
		return game.CommandMoveDown
	case key.Matches(msg, k.Rotate):
		return game.CommandRotate
	case key.Matches(msg, k.Drop):
		return game.CommandHardDrop
	case key.Matches(msg, k.NewGame):
		return game.CommandNewGame
	case key.Matches(msg, k.Quit):
		return game.CommandQuit
	}
	return game.CommandNone
}
