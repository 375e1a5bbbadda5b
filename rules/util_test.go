package rules

import "time"

// scriptedSource replays a fixed list of draws, then falls back to 0.
type scriptedSource struct {
	values []int
}

func newScriptedSource(values ...int) *scriptedSource {
	return &scriptedSource{values: values}
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

var epoch = time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC)

func runningState(food Point, snake ...Point) *State {
	return &State{
		Status:    GameStatusRunning,
		Snake:     snake,
		Food:      food,
		Direction: Down,
		Heading:   Down,
	}
}
