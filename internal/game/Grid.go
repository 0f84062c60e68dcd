package game

import "fmt"

// Grid is the fixed-size occupancy matrix. Row 0 is the top row.
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("game: invalid grid size %dx%d", width, height))
	}

	cells := make([][]Cell, height)
	for row := range cells {
		cells[row] = make([]Cell, width)
	}

	return &Grid{width: width, height: height, cells: cells}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Cell returns the value at (x, y), or EmptyCell outside the grid.
func (g *Grid) Cell(x, y int) Cell {
	if !g.inside(x, y) {
		return EmptyCell
	}
	return g.cells[y][x]
}

// Rows returns a copy of the grid contents, top row first.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for y, row := range g.cells {
		rows[y] = append([]Cell(nil), row...)
	}
	return rows
}

func (g *Grid) Clone() *Grid {
	return &Grid{width: g.width, height: g.height, cells: g.Rows()}
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// CanPlace reports whether every cell of the piece is inside the side and
// bottom walls and free. Cells above the top row are allowed.
func (g *Grid) CanPlace(p Piece) bool {
	for _, point := range p.Layout() {
		if point.X < 0 || point.X >= g.width || point.Y >= g.height {
			return false
		}
		if point.Y >= 0 && g.cells[point.Y][point.X] != EmptyCell {
			return false
		}
	}
	return true
}

// Place locks the piece into the grid. Cells above the top row are dropped.
// The piece must satisfy CanPlace.
func (g *Grid) Place(p Piece) {
	if !g.CanPlace(p) {
		panic(fmt.Sprintf("game: place of colliding piece %s at %v", p.Shape(), p.Position()))
	}

	color := p.Color()
	for _, point := range p.Layout() {
		if point.Y < 0 {
			continue
		}
		g.cells[point.Y][point.X] = color
	}
}

// Settle removes full rows, drops the remaining rows down in their original
// order and returns how many rows were removed.
func (g *Grid) Settle() int {
	write := g.height - 1
	for read := g.height - 1; read >= 0; read-- {
		if g.rowFull(read) {
			continue
		}
		if write != read {
			copy(g.cells[write], g.cells[read])
		}
		write--
	}

	cleared := write + 1
	for y := 0; y <= write; y++ {
		clear(g.cells[y])
	}
	return cleared
}

func (g *Grid) rowFull(y int) bool {
	for _, cell := range g.cells[y] {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for _, row := range g.cells {
		clear(row)
	}
}
