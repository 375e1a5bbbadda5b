package rules

import (
	"errors"
	"strings"
)

// ErrInvalidDirection is returned for anything that is not one of the four
// unit directions.
var ErrInvalidDirection = errors.New("rules: invalid direction")

// ValidDirection reports whether d is one of Up, Down, Left or Right.
func ValidDirection(d Point) bool {
	return d.Equal(Up) || d.Equal(Down) || d.Equal(Left) || d.Equal(Right)
}

// AcceptDirection filters a heading request. A request on the axis the snake
// is already travelling along is dropped, which stops the snake from turning
// back into its own neck. Everything else, repeats included, replaces
// current.
func AcceptDirection(current, requested Point) Point {
	if current.X != 0 && requested.X != 0 {
		return current
	}
	if current.Y != 0 && requested.Y != 0 {
		return current
	}
	return requested
}

// SetDirection applies a heading request to st. The request is gated
// against the direction of the last committed move, so any number of
// requests between two ticks can never reverse the snake. The latest
// accepted request wins. Requests are ignored once a run is over or before
// it starts.
//
// The gate deliberately uses Heading, not the pending Direction: with the
// snake moving down, Left then Right before the next tick ends up Right,
// where gating on Direction would keep Left.
func SetDirection(st *State, requested Point) (*State, error) {
	if !ValidDirection(requested) {
		return nil, ErrInvalidDirection
	}
	next := st.Clone()
	if st.Status != GameStatusRunning && st.Status != GameStatusPaused {
		return next, nil
	}
	if AcceptDirection(st.Heading, requested).Equal(requested) {
		next.Direction = requested
	}
	return next, nil
}

// ParseDirection maps a direction name, or its wasd key, to a vector.
func ParseDirection(name string) (Point, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	}
	return Point{}, ErrInvalidDirection
}

// DirectionName is the inverse of ParseDirection.
func DirectionName(d Point) string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return ""
}
