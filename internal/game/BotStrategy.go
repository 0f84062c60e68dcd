package game

import "errors"

var ErrStrategyNotFound = errors.New("bot strategy not found")

// Placement is where a strategy wants the active piece to land: its final
// rotation and the X of its 4x4 box.
type Placement struct {
	Rotation int
	X        int
}

// Strategy picks a placement for the falling piece.
type Strategy interface {
	Name() string
	NextPlacement(grid *Grid, piece Piece) (Placement, error)
}

// reachable walks the path a bot takes to a placement, rotating in place first
// and then sliding sideways, and returns the piece it ends up with.
func reachable(grid *Grid, piece Piece, target Placement) (Piece, bool) {
	current := piece
	for i, n := 0, normalizeRotation(target.Rotation-piece.Rotation()); i < n; i++ {
		current = current.Rotated()
		if !grid.CanPlace(current) {
			return Piece{}, false
		}
	}

	for current.Position().X != target.X {
		if current.Position().X < target.X {
			current = current.MovedRight()
		} else {
			current = current.MovedLeft()
		}
		if !grid.CanPlace(current) {
			return Piece{}, false
		}
	}

	return current, true
}

func dropToFloor(grid *Grid, piece Piece) Piece {
	for {
		down := piece.MovedDown()
		if !grid.CanPlace(down) {
			return piece
		}
		piece = down
	}
}
