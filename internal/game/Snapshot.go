package game

import "time"

// PieceView is the render-facing projection of a piece.
type PieceView struct {
	Shape Shape
	Color Cell
	Cells [4]Point
}

func viewOf(p Piece) *PieceView {
	return &PieceView{Shape: p.Shape(), Color: p.Color(), Cells: p.Layout()}
}

// Snapshot is a copy of everything a renderer needs. Mutating it has no effect
// on the game.
type Snapshot struct {
	Width  int
	Height int
	Rows   [][]Cell

	Active *PieceView
	Ghost  *PieceView
	// Next cells are relative to the piece's 4x4 box.
	Next *PieceView

	Score           int
	Lines           int
	Level           int
	IsActive        bool
	GravityInterval time.Duration
}

func (gm *GameManager) Snapshot() Snapshot {
	snapshot := Snapshot{
		Width:           gm.grid.Width(),
		Height:          gm.grid.Height(),
		Rows:            gm.grid.Rows(),
		Score:           gm.score,
		Lines:           gm.lines,
		Level:           gm.Level(),
		IsActive:        gm.IsActive(),
		GravityInterval: gm.GravityInterval(),
	}

	if gm.round == nil {
		return snapshot
	}

	snapshot.Active = viewOf(gm.round.active)
	snapshot.Next = viewOf(gm.round.next.At(Point{}))
	if gm.round.ghost != nil {
		snapshot.Ghost = viewOf(*gm.round.ghost)
	}
	return snapshot
}

// CellAt returns what a renderer should draw at (x, y): the active piece wins
// over locked cells, the ghost only shows on empty cells. The bool is true for
// ghost cells.
func (s Snapshot) CellAt(x, y int) (Cell, bool) {
	if s.Active != nil && s.Active.covers(x, y) {
		return s.Active.Color, false
	}
	if y >= 0 && y < len(s.Rows) && x >= 0 && x < len(s.Rows[y]) && s.Rows[y][x] != EmptyCell {
		return s.Rows[y][x], false
	}
	if s.Ghost != nil && s.Ghost.covers(x, y) {
		return s.Ghost.Color, true
	}
	return EmptyCell, false
}

func (v *PieceView) covers(x, y int) bool {
	for _, point := range v.Cells {
		if point.X == x && point.Y == y {
			return true
		}
	}
	return false
}
