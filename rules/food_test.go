package rules

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInBounds(t *testing.T) {
	require.True(t, InBounds(Point{X: 0, Y: 0}))
	require.True(t, InBounds(Point{X: 9, Y: 9}))
	require.False(t, InBounds(Point{X: -1, Y: 0}))
	require.False(t, InBounds(Point{X: 0, Y: -1}))
	require.False(t, InBounds(Point{X: 10, Y: 0}))
	require.False(t, InBounds(Point{X: 0, Y: 10}))
}

func TestPlaceFoodRejectsOccupied(t *testing.T) {
	src := newScriptedSource(2, 2, 2, 1, 4, 7)
	p, err := PlaceFood(src, []Point{{X: 2, Y: 2}, {X: 2, Y: 1}})
	require.NoError(t, err)
	require.Equal(t, Point{X: 4, Y: 7}, p)
}

func TestPlaceFoodNeverOnOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < GridSize*GridSize; n++ {
		occupied := make([]Point, 0, n)
		for _, i := range rng.Perm(GridSize * GridSize)[:n] {
			occupied = append(occupied, Point{X: i % GridSize, Y: i / GridSize})
		}
		p, err := PlaceFood(rng, occupied)
		require.NoError(t, err)
		require.True(t, InBounds(p))
		require.False(t, contains(occupied, p), "food placed on %v with %d occupied", p, n)
	}
}

func TestPlaceFoodLastFreeCell(t *testing.T) {
	var occupied []Point
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if x == 6 && y == 3 {
				continue
			}
			occupied = append(occupied, Point{X: x, Y: y})
		}
	}
	p, err := PlaceFood(rand.New(rand.NewSource(1)), occupied)
	require.NoError(t, err)
	require.Equal(t, Point{X: 6, Y: 3}, p)
}

func TestPlaceFoodBoardFull(t *testing.T) {
	var occupied []Point
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			occupied = append(occupied, Point{X: x, Y: y})
		}
	}
	// Duplicates and off-board cells must not make a full board look free
	// or a free board look full.
	occupied = append(occupied, Point{X: 0, Y: 0}, Point{X: -1, Y: 4})

	_, err := PlaceFood(newScriptedSource(), occupied)
	require.Equal(t, ErrBoardFull, err)

	dupes := []Point{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 20, Y: 20}}
	_, err = PlaceFood(newScriptedSource(3, 3), dupes)
	require.NoError(t, err)
}
