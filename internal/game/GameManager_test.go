package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, shapes ...Shape) *GameManager {
	t.Helper()
	gm, err := NewGameManager(DefaultConfig(), ShapeSequence(shapes...))
	require.NoError(t, err)
	return gm
}

func TestNewGameManagerValidatesConfig(t *testing.T) {
	config := DefaultConfig()
	config.Width = 3
	_, err := NewGameManager(config, ShapeSequence(ShapeO))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewGameManager(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewGameManagerStartsInactive(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	assert.False(t, gm.IsActive())

	_, ok := gm.ActivePiece()
	assert.False(t, ok)
	_, ok = gm.NextPiece()
	assert.False(t, ok)
}

func TestNewGameSpawnsCentered(t *testing.T) {
	gm := newTestGame(t, ShapeT, ShapeZ)
	gm.NewGame()

	require.True(t, gm.IsActive())
	active, _ := gm.ActivePiece()
	assert.Equal(t, ShapeT, active.Shape())
	assert.Equal(t, Point{X: 3, Y: 0}, active.Position())

	next, _ := gm.NextPiece()
	assert.Equal(t, ShapeZ, next.Shape())

	assert.Zero(t, gm.Score())
	assert.Zero(t, gm.Lines())
	assert.Zero(t, gm.Level())
}

func TestNewGameDiscardsPreviousGame(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()
	gm.HardDrop()
	gm.lines = 12
	require.NotZero(t, gm.Score())

	gm.NewGame()
	assert.Zero(t, gm.Score())
	assert.Zero(t, gm.Lines())
	assert.Zero(t, occupied(gm.Grid()))
	assert.True(t, gm.IsActive())
}

func TestAdvanceAppliesGravity(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()

	gm.Advance(DefaultBaseInterval)
	active, _ := gm.ActivePiece()
	assert.Equal(t, 0, active.Position().Y, "accumulator must exceed the interval")

	gm.Advance(time.Millisecond)
	active, _ = gm.ActivePiece()
	assert.Equal(t, 1, active.Position().Y)

	// accumulator was reset
	gm.Advance(DefaultBaseInterval / 2)
	active, _ = gm.ActivePiece()
	assert.Equal(t, 1, active.Position().Y)
	assert.Zero(t, gm.Score(), "gravity awards nothing")
}

func TestAdvanceIsNoopWhileInactive(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.Advance(time.Hour)
	assert.False(t, gm.IsActive())
	assert.Zero(t, gm.PiecesSpawned())
}

func TestGravityIntervalFollowsLevel(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	assert.Equal(t, 1000*time.Millisecond, gm.GravityInterval())

	gm.lines = 10
	assert.Equal(t, 1, gm.Level())
	assert.Equal(t, 950*time.Millisecond, gm.GravityInterval())

	gm.lines = 29
	assert.Equal(t, 2, gm.Level())
	assert.Equal(t, 900*time.Millisecond, gm.GravityInterval())

	gm.lines = 1000
	assert.Equal(t, DefaultMinInterval, gm.GravityInterval())
}

func TestGhostPiece(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()

	ghost, ok := gm.GhostPiece()
	require.True(t, ok)
	assert.Equal(t, Point{X: 3, Y: 18}, ghost.Position())

	gm.MoveLeft()
	gm.Advance(0)
	ghost, ok = gm.GhostPiece()
	require.True(t, ok)
	assert.Equal(t, Point{X: 2, Y: 18}, ghost.Position())

	for n := 0; n < 18; n++ {
		require.Equal(t, DropMoved, gm.MoveDown())
	}
	gm.Advance(0)
	_, ok = gm.GhostPiece()
	assert.False(t, ok, "no ghost once the piece rests")
}

func TestMovesAreRejectedAtWalls(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()

	for n := 0; n < 3; n++ {
		require.True(t, gm.MoveLeft())
	}
	assert.False(t, gm.MoveLeft())
	active, _ := gm.ActivePiece()
	assert.Equal(t, Point{X: 0, Y: 0}, active.Position())

	for n := 0; n < 8; n++ {
		require.True(t, gm.MoveRight())
	}
	assert.False(t, gm.MoveRight())
	active, _ = gm.ActivePiece()
	assert.Equal(t, Point{X: 8, Y: 0}, active.Position())
}

func TestRotateIsRejectedWithoutKick(t *testing.T) {
	gm := newTestGame(t, ShapeI)
	gm.NewGame()

	// vertical I hugging the left wall
	for n := 0; n < 4; n++ {
		require.True(t, gm.MoveLeft())
	}
	require.False(t, gm.MoveLeft())

	assert.False(t, gm.Rotate())
	active, _ := gm.ActivePiece()
	assert.Equal(t, 0, active.Rotation())
	assert.Equal(t, Point{X: -1, Y: 0}, active.Position())

	gm.MoveRight()
	assert.True(t, gm.Rotate())
	active, _ = gm.ActivePiece()
	assert.Equal(t, 1, active.Rotation())
}

func TestSoftDropAwardsBonus(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()

	assert.Equal(t, DropMoved, gm.MoveDown())
	assert.Equal(t, DefaultSoftDropBonus, gm.Score())
	active, _ := gm.ActivePiece()
	assert.Equal(t, 1, active.Position().Y)
}

func TestSoftDropThatLocksAwardsNothing(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()
	for n := 0; n < 18; n++ {
		gm.MoveDown()
	}
	scored := gm.Score()

	assert.Equal(t, DropLocked, gm.MoveDown())
	assert.Equal(t, scored, gm.Score())
	assert.Equal(t, 2, gm.PiecesSpawned())
}

func TestHardDropAwardsPerRow(t *testing.T) {
	gm := newTestGame(t, ShapeO, ShapeT)
	gm.NewGame()

	rows, result := gm.HardDrop()
	assert.Equal(t, 18, rows)
	assert.Equal(t, DropLocked, result)
	assert.Equal(t, 18*DefaultHardDropBonus, gm.Score())

	grid := gm.Grid()
	for _, point := range []Point{{3, 18}, {4, 18}, {3, 19}, {4, 19}} {
		assert.Equal(t, ShapeO.Color(), grid.Cell(point.X, point.Y))
	}

	active, _ := gm.ActivePiece()
	assert.Equal(t, ShapeT, active.Shape())
	assert.Equal(t, Point{X: 3, Y: 0}, active.Position())
	next, _ := gm.NextPiece()
	assert.Equal(t, ShapeO, next.Shape())
}

func TestHardDropFromPartialHeight(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()
	for n := 0; n < 5; n++ {
		gm.MoveDown()
	}
	before := gm.Score()

	rows, _ := gm.HardDrop()
	assert.Equal(t, 13, rows)
	assert.Equal(t, before+13*DefaultHardDropBonus, gm.Score())
}

func TestSingleLineClearAtLevelZero(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()
	fillRow(gm.grid, 19, 1, 3, 4)

	rows, result := gm.HardDrop()
	require.Equal(t, DropLocked, result)

	assert.Equal(t, rows*DefaultHardDropBonus+DefaultLineValues[0], gm.Score())
	assert.Equal(t, 1, gm.Lines())

	// the upper half of the O is now on the bottom row
	assert.Equal(t, 2, occupied(gm.Grid()))
	assert.Equal(t, ShapeO.Color(), gm.Grid().Cell(3, 19))
	assert.Equal(t, ShapeO.Color(), gm.Grid().Cell(4, 19))
}

func TestTetrisAtLevelTwo(t *testing.T) {
	gm := newTestGame(t, ShapeI)
	gm.NewGame()
	gm.lines = 20
	for y := 16; y < 20; y++ {
		fillRow(gm.grid, y, 2, 4)
	}

	rows, result := gm.HardDrop()
	require.Equal(t, DropLocked, result)
	require.Equal(t, 16, rows)

	assert.Equal(t, 16*DefaultHardDropBonus+3*DefaultLineValues[3], gm.Score())
	assert.Equal(t, 24, gm.Lines())
	assert.Zero(t, occupied(gm.Grid()))
}

func TestLevelIsTakenBeforeLinesAreAdded(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()
	gm.lines = 9
	fillRow(gm.grid, 19, 1, 3, 4)

	rows, _ := gm.HardDrop()
	assert.Equal(t, rows*DefaultHardDropBonus+DefaultLineValues[0], gm.Score())
	assert.Equal(t, 1, gm.Level())
}

func TestBlockedSpawnEndsGame(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()
	gm.grid.cells[2][3] = 7
	gm.grid.cells[2][4] = 7
	require.True(t, gm.IsActive())

	assert.Equal(t, DropGameOver, gm.MoveDown())
	assert.False(t, gm.IsActive())

	score, ok := gm.TakeGameOver()
	assert.True(t, ok)
	assert.Zero(t, score)

	_, ok = gm.TakeGameOver()
	assert.False(t, ok, "game over is reported once")

	// the board keeps the final position
	assert.Equal(t, ShapeO.Color(), gm.Grid().Cell(3, 0))
}

func TestGameOverKeepsFinalScore(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	gm.NewGame()
	gm.score = 500
	for y := 2; y < 20; y++ {
		fillRow(gm.grid, y, 1, 0)
	}

	rows, result := gm.HardDrop()
	assert.Zero(t, rows)
	assert.Equal(t, DropGameOver, result)
	assert.False(t, gm.IsActive())

	score, ok := gm.TakeGameOver()
	assert.True(t, ok)
	assert.Equal(t, 500, score)
	assert.Equal(t, 500, gm.Score(), "score stays readable after the game")

	// commands after game over change nothing
	gm.Execute(CommandHardDrop)
	assert.Equal(t, 500, gm.Score())
}

func TestCommandsAreIgnoredWhileInactive(t *testing.T) {
	gm := newTestGame(t, ShapeO)

	assert.False(t, gm.MoveLeft())
	assert.False(t, gm.MoveRight())
	assert.False(t, gm.Rotate())
	assert.Equal(t, DropIgnored, gm.MoveDown())
	rows, result := gm.HardDrop()
	assert.Zero(t, rows)
	assert.Equal(t, DropIgnored, result)
	assert.Zero(t, gm.Score())
}

func TestSnapshot(t *testing.T) {
	gm := newTestGame(t, ShapeT, ShapeI)
	gm.NewGame()
	gm.grid.cells[19][0] = 5

	snapshot := gm.Snapshot()
	assert.True(t, snapshot.IsActive)
	assert.Equal(t, 10, snapshot.Width)
	assert.Equal(t, 20, snapshot.Height)
	assert.Equal(t, DefaultBaseInterval, snapshot.GravityInterval)

	require.NotNil(t, snapshot.Active)
	assert.Equal(t, ShapeT.Color(), snapshot.Active.Color)
	assert.ElementsMatch(t, []Point{{3, 1}, {4, 1}, {5, 1}, {4, 2}}, snapshot.Active.Cells)

	require.NotNil(t, snapshot.Next)
	assert.Equal(t, ShapeI, snapshot.Next.Shape)
	assert.Equal(t, ShapeLayout(ShapeI, 0), snapshot.Next.Cells)

	require.NotNil(t, snapshot.Ghost)
	assert.ElementsMatch(t, []Point{{3, 18}, {4, 18}, {5, 18}, {4, 19}}, snapshot.Ghost.Cells)

	cell, ghost := snapshot.CellAt(4, 1)
	assert.Equal(t, ShapeT.Color(), cell)
	assert.False(t, ghost)

	cell, ghost = snapshot.CellAt(4, 19)
	assert.Equal(t, ShapeT.Color(), cell)
	assert.True(t, ghost)

	cell, _ = snapshot.CellAt(0, 19)
	assert.Equal(t, Cell(5), cell)

	// the snapshot is detached from the grid
	snapshot.Rows[19][0] = 1
	assert.Equal(t, Cell(5), gm.Grid().Cell(0, 19))
}

func TestSnapshotWhileInactive(t *testing.T) {
	gm := newTestGame(t, ShapeO)
	snapshot := gm.Snapshot()
	assert.False(t, snapshot.IsActive)
	assert.Nil(t, snapshot.Active)
	assert.Nil(t, snapshot.Ghost)
	assert.Nil(t, snapshot.Next)
}

func TestExecute(t *testing.T) {
	gm := newTestGame(t, ShapeO)

	assert.True(t, gm.Execute(CommandMoveLeft), "ignored while inactive")
	assert.True(t, gm.Execute(CommandNewGame))
	require.True(t, gm.IsActive())

	gm.Execute(CommandMoveRight)
	gm.Execute(CommandMoveDown)
	active, _ := gm.ActivePiece()
	assert.Equal(t, Point{X: 4, Y: 1}, active.Position())

	gm.Execute(CommandHardDrop)
	assert.Equal(t, 2, gm.PiecesSpawned())

	assert.False(t, gm.Execute(CommandQuit))
	assert.True(t, gm.IsActive(), "quit leaves the game alone")
}

func TestParseCommand(t *testing.T) {
	for _, command := range []Command{
		CommandNewGame, CommandMoveLeft, CommandMoveRight, CommandMoveDown,
		CommandRotate, CommandHardDrop, CommandQuit,
	} {
		parsed, err := ParseCommand(command.String())
		require.NoError(t, err)
		assert.Equal(t, command, parsed)
	}

	_, err := ParseCommand("jump")
	assert.Error(t, err)
	_, err = ParseCommand("none")
	assert.Error(t, err)
}
