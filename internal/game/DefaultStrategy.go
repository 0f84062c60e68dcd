package game

import "math"

// Weights for the board evaluation. Higher scores are better.
const (
	heightWeight    = -0.510066
	linesWeight     = 0.760666
	holesWeight     = -0.35663
	bumpinessWeight = -0.184483
)

// DefaultStrategy tries every rotation and column the piece can reach, drops
// it, and keeps the placement that leaves the best looking board.
type DefaultStrategy struct{}

func (s *DefaultStrategy) Name() string { return "default" }

func (s *DefaultStrategy) NextPlacement(grid *Grid, piece Piece) (Placement, error) {
	best := Placement{Rotation: piece.Rotation(), X: piece.Position().X}
	bestScore := math.Inf(-1)

	for turn := 0; turn < RotationCount; turn++ {
		rotation := normalizeRotation(piece.Rotation() + turn)
		// a 4x4 box can hang up to 3 columns past either wall
		for x := -3; x < grid.Width(); x++ {
			target := Placement{Rotation: rotation, X: x}
			landed, ok := reachable(grid, piece, target)
			if !ok {
				continue
			}

			score := s.evaluate(grid, dropToFloor(grid, landed))
			if score > bestScore {
				bestScore = score
				best = target
			}
		}
	}

	return best, nil
}

func (s *DefaultStrategy) evaluate(grid *Grid, landed Piece) float64 {
	board := grid.Clone()
	board.Place(landed)
	cleared := board.Settle()

	heights := columnHeights(board)
	aggregate, bumpiness := 0, 0
	for x, height := range heights {
		aggregate += height
		if x > 0 {
			bumpiness += abs(height - heights[x-1])
		}
	}

	return heightWeight*float64(aggregate) +
		linesWeight*float64(cleared) +
		holesWeight*float64(countHoles(board)) +
		bumpinessWeight*float64(bumpiness)
}

func columnHeights(grid *Grid) []int {
	heights := make([]int, grid.Width())
	for x := range heights {
		for y := 0; y < grid.Height(); y++ {
			if grid.Cell(x, y) != EmptyCell {
				heights[x] = grid.Height() - y
				break
			}
		}
	}
	return heights
}

// countHoles counts empty cells with a locked cell somewhere above them.
func countHoles(grid *Grid) int {
	holes := 0
	for x := 0; x < grid.Width(); x++ {
		covered := false
		for y := 0; y < grid.Height(); y++ {
			if grid.Cell(x, y) != EmptyCell {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
