package game

import "fmt"

// Command is an abstract player action produced by an input collaborator.
type Command int

const (
	CommandNone Command = iota
	CommandNewGame
	CommandMoveLeft
	CommandMoveRight
	CommandMoveDown
	CommandRotate
	CommandHardDrop
	CommandQuit
)

var commandNames = map[Command]string{
	CommandNone:      "none",
	CommandNewGame:   "new-game",
	CommandMoveLeft:  "move-left",
	CommandMoveRight: "move-right",
	CommandMoveDown:  "move-down",
	CommandRotate:    "rotate",
	CommandHardDrop:  "hard-drop",
	CommandQuit:      "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand maps a kebab-case command name to its Command.
func ParseCommand(name string) (Command, error) {
	for command, commandName := range commandNames {
		if command != CommandNone && commandName == name {
			return command, nil
		}
	}
	return CommandNone, fmt.Errorf("unknown command %q", name)
}

// Execute applies a command. It returns false when the host should stop,
// which only CommandQuit asks for.
func (gm *GameManager) Execute(command Command) bool {
	switch command {
	case CommandNewGame:
		gm.NewGame()
	case CommandMoveLeft:
		gm.MoveLeft()
	case CommandMoveRight:
		gm.MoveRight()
	case CommandMoveDown:
		gm.MoveDown()
	case CommandRotate:
		gm.Rotate()
	case CommandHardDrop:
		gm.HardDrop()
	case CommandQuit:
		return false
	}
	return true
}
