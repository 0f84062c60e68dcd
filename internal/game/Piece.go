package game

// Piece is an immutable tetromino placed on the board. Every transformation
// returns a new value.
type Piece struct {
	shape    Shape
	rotation int
	position Point
}

// NewPiece builds a piece. The rotation is normalized into [0, RotationCount).
func NewPiece(shape Shape, rotation int, position Point) Piece {
	shape.definition()
	return Piece{
		shape:    shape,
		rotation: normalizeRotation(rotation),
		position: position,
	}
}

func (p Piece) Shape() Shape       { return p.shape }
func (p Piece) Rotation() int      { return p.rotation }
func (p Piece) Position() Point    { return p.position }
func (p Piece) Color() Cell        { return p.shape.Color() }
func (p Piece) At(pos Point) Piece { return Piece{shape: p.shape, rotation: p.rotation, position: pos} }

func (p Piece) MovedLeft() Piece {
	return p.At(Point{X: p.position.X - 1, Y: p.position.Y})
}

func (p Piece) MovedRight() Piece {
	return p.At(Point{X: p.position.X + 1, Y: p.position.Y})
}

func (p Piece) MovedDown() Piece {
	return p.At(Point{X: p.position.X, Y: p.position.Y + 1})
}

// Rotated turns the piece one step in place. No kick is attempted: the caller
// rejects the result if it does not fit.
func (p Piece) Rotated() Piece {
	return Piece{
		shape:    p.shape,
		rotation: (p.rotation + 1) % RotationCount,
		position: p.position,
	}
}

// Layout returns the absolute coordinates the piece covers. Coordinates may
// fall outside the grid.
func (p Piece) Layout() [4]Point {
	layout := ShapeLayout(p.shape, p.rotation)
	for i := range layout {
		layout[i].X += p.position.X
		layout[i].Y += p.position.Y
	}
	return layout
}
