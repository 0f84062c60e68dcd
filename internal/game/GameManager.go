package game

import (
	"fmt"
	"time"
)

// DropResult is the outcome of one lower step.
type DropResult int

const (
	// DropMoved means the active piece moved down one row.
	DropMoved DropResult = iota
	// DropLocked means the piece was locked and the next one spawned.
	DropLocked
	// DropGameOver means the piece was locked but the next one did not fit.
	DropGameOver
	// DropIgnored means no game is running.
	DropIgnored
)

func (r DropResult) String() string {
	switch r {
	case DropMoved:
		return "moved"
	case DropLocked:
		return "locked"
	case DropGameOver:
		return "game-over"
	default:
		return "ignored"
	}
}

// activeRound holds everything that only exists while a piece is falling.
type activeRound struct {
	active Piece
	next   Piece
	ghost  *Piece
	timer  time.Duration
}

// GameManager drives one game: spawning, gravity, commands, scoring and
// leveling. It is not safe for concurrent use; the host calls it from a
// single goroutine.
type GameManager struct {
	config    Config
	generator Generator

	grid  *Grid
	score int
	lines int

	// nil while inactive
	round *activeRound

	gameOver   bool
	finalScore int

	// counts spawned pieces so callers can tell one falling piece from the next
	spawned int
}

// NewGameManager returns an inactive game. Call NewGame to start playing.
func NewGameManager(config Config, generator Generator) (*GameManager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if generator == nil {
		return nil, fmt.Errorf("%w: generator is required", ErrInvalidConfig)
	}

	return &GameManager{
		config:    config,
		generator: generator,
		grid:      NewGrid(config.Width, config.Height),
	}, nil
}

func (gm *GameManager) Config() Config { return gm.config }

// Grid exposes the board for reading. Callers must not mutate it.
func (gm *GameManager) Grid() *Grid { return gm.grid }

func (gm *GameManager) Score() int     { return gm.score }
func (gm *GameManager) Lines() int     { return gm.lines }
func (gm *GameManager) IsActive() bool { return gm.round != nil }

// Level is lines cleared divided by lines per level.
func (gm *GameManager) Level() int {
	return gm.lines / gm.config.LinesPerLevel
}

// GravityInterval is the current time between automatic drops.
func (gm *GameManager) GravityInterval() time.Duration {
	return gm.config.GravityInterval(gm.Level())
}

// PiecesSpawned counts active pieces spawned since the manager was created.
func (gm *GameManager) PiecesSpawned() int { return gm.spawned }

func (gm *GameManager) ActivePiece() (Piece, bool) {
	if gm.round == nil {
		return Piece{}, false
	}
	return gm.round.active, true
}

func (gm *GameManager) NextPiece() (Piece, bool) {
	if gm.round == nil {
		return Piece{}, false
	}
	return gm.round.next, true
}

func (gm *GameManager) GhostPiece() (Piece, bool) {
	if gm.round == nil || gm.round.ghost == nil {
		return Piece{}, false
	}
	return *gm.round.ghost, true
}

// TakeGameOver reports the final score of a game that just ended. It returns
// true only once per game over.
func (gm *GameManager) TakeGameOver() (int, bool) {
	if !gm.gameOver {
		return 0, false
	}
	gm.gameOver = false
	return gm.finalScore, true
}

// NewGame discards any previous game and starts a new one.
func (gm *GameManager) NewGame() {
	gm.grid.Reset()
	gm.score = 0
	gm.lines = 0
	gm.gameOver = false
	gm.finalScore = 0

	gm.round = &activeRound{
		active: gm.spawnPosition(gm.generator.Next()),
		next:   gm.generator.Next(),
	}
	gm.refreshGhost()
}

// Advance moves the clock forward by elapsed and applies gravity when the
// current interval has passed.
func (gm *GameManager) Advance(elapsed time.Duration) {
	if gm.round == nil {
		return
	}

	gm.refreshGhost()

	gm.round.timer += elapsed
	if gm.round.timer > gm.GravityInterval() {
		gm.round.timer = 0
		gm.lower()
	}
}

func (gm *GameManager) MoveLeft() bool {
	return gm.try(Piece.MovedLeft)
}

func (gm *GameManager) MoveRight() bool {
	return gm.try(Piece.MovedRight)
}

func (gm *GameManager) Rotate() bool {
	return gm.try(Piece.Rotated)
}

// MoveDown is a soft drop: one immediate lower step, rewarded when the piece
// actually moved.
func (gm *GameManager) MoveDown() DropResult {
	if gm.round == nil {
		return DropIgnored
	}

	result := gm.lower()
	if result == DropMoved {
		gm.score += gm.config.SoftDropBonus
	}
	return result
}

// HardDrop lowers the piece until it locks and returns how many rows it fell.
func (gm *GameManager) HardDrop() (int, DropResult) {
	if gm.round == nil {
		return 0, DropIgnored
	}

	rows := 0
	for {
		result := gm.lower()
		if result != DropMoved {
			return rows, result
		}
		rows++
		gm.score += gm.config.HardDropBonus
	}
}

func (gm *GameManager) try(transform func(Piece) Piece) bool {
	if gm.round == nil {
		return false
	}

	candidate := transform(gm.round.active)
	if !gm.grid.CanPlace(candidate) {
		return false
	}
	gm.round.active = candidate
	gm.refreshGhost()
	return true
}

// lower is the gravity step shared by the timer, soft drop and hard drop.
func (gm *GameManager) lower() DropResult {
	round := gm.round

	down := round.active.MovedDown()
	if gm.grid.CanPlace(down) {
		round.active = down
		gm.refreshGhost()
		return DropMoved
	}

	gm.grid.Place(round.active)
	if cleared := gm.grid.Settle(); cleared > 0 {
		gm.score += (gm.Level() + 1) * gm.config.LineValues[min(cleared, len(gm.config.LineValues))-1]
		gm.lines += cleared
	}

	round.active = gm.spawnPosition(round.next)
	round.next = gm.generator.Next()
	if !gm.grid.CanPlace(round.active) {
		gm.round = nil
		gm.gameOver = true
		gm.finalScore = gm.score
		return DropGameOver
	}

	gm.refreshGhost()
	return DropLocked
}

// spawnPosition centers the piece's 4x4 box horizontally on the top row.
func (gm *GameManager) spawnPosition(p Piece) Piece {
	gm.spawned++
	return p.At(Point{X: (gm.config.Width - 4) / 2, Y: 0})
}

func (gm *GameManager) refreshGhost() {
	round := gm.round
	round.ghost = nil

	candidate := round.active.MovedDown()
	for gm.grid.CanPlace(candidate) {
		landed := candidate
		round.ghost = &landed
		candidate = candidate.MovedDown()
	}
}
