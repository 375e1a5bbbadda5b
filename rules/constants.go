package rules

import "time"

// Fixed game parameters.
const (
	GridSize      = 10
	TickInterval  = 200 * time.Millisecond
	BonusEvery    = 5
	BonusLifetime = 6000 * time.Millisecond
	FoodScore     = 1
	BonusScore    = 5
	InitialLength = 2
)

// initialSnake is the body every run starts with, head first.
func initialSnake() []Point {
	return []Point{{X: 2, Y: 2}, {X: 2, Y: 1}}
}

// InitialDirection is the heading of a fresh snake.
var InitialDirection = Down
