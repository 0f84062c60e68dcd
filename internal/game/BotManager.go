package game

import (
	"github.com/charmbracelet/log"
)

// Autopilot plays a game through the same commands a player would send. The
// host calls Step once per frame; each call issues at most one command.
type Autopilot struct {
	Strategy Strategy
	game     *GameManager

	plan        []Command
	plannedFor  int
	hasPlan     bool
	lastFailure error
}

func NewAutopilot(gm *GameManager, strategy Strategy) *Autopilot {
	if strategy == nil {
		strategy = &DefaultStrategy{}
	}
	return &Autopilot{Strategy: strategy, game: gm}
}

// Step dispatches the next planned command and returns it, or CommandNone
// when no game is running.
func (a *Autopilot) Step() Command {
	piece, ok := a.game.ActivePiece()
	if !ok {
		a.hasPlan = false
		return CommandNone
	}

	if !a.hasPlan || a.plannedFor != a.game.PiecesSpawned() {
		a.plan = a.planFor(piece)
		a.plannedFor = a.game.PiecesSpawned()
		a.hasPlan = true
	}

	if len(a.plan) == 0 {
		return CommandNone
	}

	command := a.plan[0]
	a.plan = a.plan[1:]
	a.game.Execute(command)
	return command
}

// LastError is the most recent strategy failure, if any.
func (a *Autopilot) LastError() error { return a.lastFailure }

func (a *Autopilot) planFor(piece Piece) []Command {
	placement, err := a.Strategy.NextPlacement(a.game.Grid(), piece)
	if err != nil {
		log.Warn("Bot strategy failed, dropping in place", "strategy", a.Strategy.Name(), "error", err)
		a.lastFailure = err
		return []Command{CommandHardDrop}
	}
	a.lastFailure = nil
	return commandsFor(piece, placement)
}

// commandsFor turns a placement into rotations, then sideways moves, then a
// hard drop.
func commandsFor(piece Piece, placement Placement) []Command {
	var commands []Command
	for i, n := 0, normalizeRotation(placement.Rotation-piece.Rotation()); i < n; i++ {
		commands = append(commands, CommandRotate)
	}

	dx := placement.X - piece.Position().X
	for ; dx < 0; dx++ {
		commands = append(commands, CommandMoveLeft)
	}
	for ; dx > 0; dx-- {
		commands = append(commands, CommandMoveRight)
	}

	return append(commands, CommandHardDrop)
}
