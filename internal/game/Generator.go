package game

import "math/rand"

// Generator supplies the pieces fed to a game. Only shape and rotation of the
// returned piece matter; the game positions it on spawn.
type Generator interface {
	Next() Piece
}

// UniformGenerator draws shape and starting rotation uniformly at random, with
// replacement.
type UniformGenerator struct {
	rng *rand.Rand
}

func NewUniformGenerator(seed int64) *UniformGenerator {
	return &UniformGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *UniformGenerator) Next() Piece {
	shape := AllShapes[g.rng.Intn(ShapeCount)]
	return NewPiece(shape, g.rng.Intn(RotationCount), Point{})
}

// BagGenerator deals all seven shapes in shuffled order before repeating any.
// Pieces always start in rotation 0.
type BagGenerator struct {
	rng *rand.Rand
	bag []Shape
}

func NewBagGenerator(seed int64) *BagGenerator {
	return &BagGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *BagGenerator) Next() Piece {
	if len(g.bag) == 0 {
		g.refill()
	}
	shape := g.bag[0]
	g.bag = g.bag[1:]
	return NewPiece(shape, 0, Point{})
}

func (g *BagGenerator) refill() {
	bag := AllShapes
	g.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	g.bag = bag[:]
}

// SequenceGenerator replays a fixed list of pieces, cycling when exhausted.
type SequenceGenerator struct {
	pieces []Piece
	index  int
}

func NewSequenceGenerator(pieces ...Piece) *SequenceGenerator {
	if len(pieces) == 0 {
		panic("game: sequence generator needs at least one piece")
	}
	return &SequenceGenerator{pieces: pieces}
}

// ShapeSequence is a convenience for a sequence of rotation-0 pieces.
func ShapeSequence(shapes ...Shape) *SequenceGenerator {
	pieces := make([]Piece, 0, len(shapes))
	for _, shape := range shapes {
		pieces = append(pieces, NewPiece(shape, 0, Point{}))
	}
	return NewSequenceGenerator(pieces...)
}

func (g *SequenceGenerator) Next() Piece {
	piece := g.pieces[g.index%len(g.pieces)]
	g.index++
	return piece
}
