package rules

import "errors"

// ErrBoardFull is returned when there is no free cell left to place food on.
var ErrBoardFull = errors.New("rules: board is full")

// Source is the randomness food placement draws from. *rand.Rand satisfies
// it.
type Source interface {
	Intn(n int) int
}

// PlaceFood picks a uniformly random cell that is not in occupied. It
// samples the whole board and retries on occupied cells, so it fails fast
// with ErrBoardFull when nothing is free.
func PlaceFood(rng Source, occupied []Point) (Point, error) {
	if countOccupied(occupied) >= GridSize*GridSize {
		return Point{}, ErrBoardFull
	}
	for {
		p := Point{
			X: rng.Intn(GridSize),
			Y: rng.Intn(GridSize),
		}
		if !contains(occupied, p) {
			return p, nil
		}
	}
}

// countOccupied counts the distinct in-bounds cells of occupied.
func countOccupied(occupied []Point) int {
	seen := map[Point]struct{}{}
	for _, p := range occupied {
		if InBounds(p) {
			seen[p] = struct{}{}
		}
	}
	return len(seen)
}
