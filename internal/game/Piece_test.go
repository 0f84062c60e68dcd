package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryLayoutHasFourDistinctCellsInsideTheBox(t *testing.T) {
	for _, shape := range AllShapes {
		for rotation := 0; rotation < RotationCount; rotation++ {
			layout := ShapeLayout(shape, rotation)
			seen := make(map[Point]bool)
			for _, point := range layout {
				assert.True(t, point.X >= 0 && point.X < 4 && point.Y >= 0 && point.Y < 4,
					"%s rotation %d: %v outside 4x4 box", shape, rotation, point)
				seen[point] = true
			}
			assert.Len(t, seen, 4, "%s rotation %d", shape, rotation)
		}
	}
}

func TestShapeColorsAreDistinct(t *testing.T) {
	colors := make(map[Cell]Shape)
	for _, shape := range AllShapes {
		color := shape.Color()
		assert.True(t, color >= 1 && color <= MaxCell, "%s color %d", shape, color)
		_, duplicate := colors[color]
		assert.False(t, duplicate, "%s reuses color %d", shape, color)
		colors[color] = shape
	}
	assert.Equal(t, Cell(1), ShapeI.Color())
}

func TestShapeSymmetry(t *testing.T) {
	t.Run("O never changes", func(t *testing.T) {
		for rotation := 1; rotation < RotationCount; rotation++ {
			assert.ElementsMatch(t, ShapeLayout(ShapeO, 0), ShapeLayout(ShapeO, rotation))
		}
	})

	t.Run("I alternates two layouts", func(t *testing.T) {
		assert.ElementsMatch(t, ShapeLayout(ShapeI, 0), ShapeLayout(ShapeI, 2))
		assert.ElementsMatch(t, ShapeLayout(ShapeI, 1), ShapeLayout(ShapeI, 3))
		assert.NotElementsMatch(t, ShapeLayout(ShapeI, 0), ShapeLayout(ShapeI, 1))
	})

	t.Run("rotation index wraps", func(t *testing.T) {
		for _, shape := range AllShapes {
			assert.Equal(t, ShapeLayout(shape, 1), ShapeLayout(shape, 5))
			assert.Equal(t, ShapeLayout(shape, 3), ShapeLayout(shape, -1))
		}
	})
}

func TestPieceLayoutAlwaysHasFourCells(t *testing.T) {
	for _, shape := range AllShapes {
		for rotation := 0; rotation < RotationCount; rotation++ {
			piece := NewPiece(shape, rotation, Point{X: -2, Y: 25})
			assert.Len(t, piece.Layout(), 4)
		}
	}
}

func TestPieceLayoutIsTranslated(t *testing.T) {
	piece := NewPiece(ShapeI, 0, Point{X: 3, Y: -2})
	assert.ElementsMatch(t, []Point{{4, -2}, {4, -1}, {4, 0}, {4, 1}}, piece.Layout())
}

func TestPieceMoves(t *testing.T) {
	piece := NewPiece(ShapeT, 2, Point{X: 4, Y: 7})

	assert.Equal(t, Point{X: 3, Y: 7}, piece.MovedLeft().Position())
	assert.Equal(t, Point{X: 5, Y: 7}, piece.MovedRight().Position())
	assert.Equal(t, Point{X: 4, Y: 8}, piece.MovedDown().Position())

	for _, moved := range []Piece{piece.MovedLeft(), piece.MovedRight(), piece.MovedDown()} {
		assert.Equal(t, ShapeT, moved.Shape())
		assert.Equal(t, 2, moved.Rotation())
	}

	// the receiver is untouched
	assert.Equal(t, Point{X: 4, Y: 7}, piece.Position())
}

func TestPieceRotatedFourTimesIsIdentity(t *testing.T) {
	for _, shape := range AllShapes {
		for rotation := 0; rotation < RotationCount; rotation++ {
			piece := NewPiece(shape, rotation, Point{X: 2, Y: 5})
			turned := piece.Rotated().Rotated().Rotated().Rotated()
			assert.Equal(t, piece, turned)
			assert.Equal(t, piece.Layout(), turned.Layout())
		}
	}
}

func TestPieceRotatedKeepsPosition(t *testing.T) {
	piece := NewPiece(ShapeL, 3, Point{X: 1, Y: 1})
	rotated := piece.Rotated()
	assert.Equal(t, 0, rotated.Rotation())
	assert.Equal(t, piece.Position(), rotated.Position())
}

func TestNewPiece(t *testing.T) {
	t.Run("normalizes rotation", func(t *testing.T) {
		assert.Equal(t, 3, NewPiece(ShapeS, -1, Point{}).Rotation())
		assert.Equal(t, 1, NewPiece(ShapeS, 5, Point{}).Rotation())
	})

	t.Run("panics on unknown shape", func(t *testing.T) {
		require.Panics(t, func() { NewPiece(Shape(ShapeCount), 0, Point{}) })
		require.Panics(t, func() { NewPiece(Shape(-1), 0, Point{}) })
	})
}
