package game

import "fmt"

// Shape is one of the seven tetromino kinds.
type Shape int

const (
	ShapeI Shape = iota
	ShapeT
	ShapeO
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
)

// ShapeCount is the number of tetromino kinds.
const ShapeCount = 7

// RotationCount is the number of rotation states every shape has.
const RotationCount = 4

// Point is an (X, Y) grid coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

// Cell is the value stored in a grid cell: EmptyCell or a shape color id 1..7.
type Cell uint8

const (
	EmptyCell Cell = 0
	MaxCell   Cell = 7
)

type shapeDefinition struct {
	name      string
	color     Cell
	rotations [RotationCount][4]Point
}

// Offsets sit inside a 4x4 bounding box.
var shapeDefinitions = [ShapeCount]shapeDefinition{
	ShapeI: {
		name:  "I",
		color: 1, // cyan
		rotations: [RotationCount][4]Point{
			{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
			{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
			{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		},
	},
	ShapeT: {
		name:  "T",
		color: 2, // blue
		rotations: [RotationCount][4]Point{
			{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
			{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
			{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
			{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
		},
	},
	ShapeO: {
		name:  "O",
		color: 3, // orange
		rotations: [RotationCount][4]Point{
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		},
	},
	ShapeL: {
		name:  "L",
		color: 4, // yellow
		rotations: [RotationCount][4]Point{
			{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
			{{2, 0}, {2, 1}, {1, 1}, {0, 1}},
			{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
			{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		},
	},
	ShapeJ: {
		name:  "J",
		color: 5, // green
		rotations: [RotationCount][4]Point{
			{{1, 0}, {1, 1}, {1, 2}, {0, 2}},
			{{2, 1}, {2, 2}, {1, 1}, {0, 1}},
			{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
			{{0, 0}, {1, 1}, {2, 1}, {0, 1}},
		},
	},
	ShapeS: {
		name:  "S",
		color: 6, // purple
		rotations: [RotationCount][4]Point{
			{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
			{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
			{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
			{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		},
	},
	ShapeZ: {
		name:  "Z",
		color: 7, // red
		rotations: [RotationCount][4]Point{
			{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
			{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
			{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
			{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		},
	},
}

// AllShapes lists every shape in color id order.
var AllShapes = [ShapeCount]Shape{ShapeI, ShapeT, ShapeO, ShapeL, ShapeJ, ShapeS, ShapeZ}

func (s Shape) Valid() bool {
	return s >= 0 && int(s) < ShapeCount
}

func (s Shape) definition() *shapeDefinition {
	if !s.Valid() {
		panic(fmt.Sprintf("game: unknown shape %d", int(s)))
	}
	return &shapeDefinitions[s]
}

// Color returns the color id (1..7) locked cells of this shape carry.
func (s Shape) Color() Cell {
	return s.definition().color
}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeDefinitions[s].name
}

// ShapeLayout returns the four offsets of shape in the given rotation. The
// rotation is taken modulo RotationCount.
func ShapeLayout(shape Shape, rotation int) [4]Point {
	return shape.definition().rotations[normalizeRotation(rotation)]
}

func normalizeRotation(rotation int) int {
	rotation %= RotationCount
	if rotation < 0 {
		rotation += RotationCount
	}
	return rotation
}
