package rules

import "time"

// BonusFood is the time limited, high value food item.
type BonusFood struct {
	Pos     Point
	Expires time.Time
	// Remaining is only set while the bonus clock is frozen.
	Remaining time.Duration
}

// Death records why and when a run ended.
type Death struct {
	Turn  int64
	Cause string
}

// State is the full record of one run. A new run replaces every field.
type State struct {
	Turn      int64
	Status    GameStatus
	Snake     []Point
	Food      Point
	Bonus     *BonusFood
	Score     int
	FoodCount int
	// Direction is the latest accepted heading request, Heading the
	// direction of the last committed move.
	Direction Point
	Heading   Point
	Death     *Death
}

// NewIdleState returns the board shown before the first Start. It has no
// food placed yet.
func NewIdleState() *State {
	return &State{
		Status:    GameStatusIdle,
		Snake:     initialSnake(),
		Food:      Point{X: -1, Y: -1},
		Direction: InitialDirection,
		Heading:   InitialDirection,
	}
}

// Head returns the first point in the body
func (st *State) Head() Point {
	return st.Snake[0]
}

// Clone returns a deep copy of the state.
func (st *State) Clone() *State {
	next := *st
	next.Snake = append([]Point(nil), st.Snake...)
	if st.Bonus != nil {
		b := *st.Bonus
		next.Bonus = &b
	}
	if st.Death != nil {
		d := *st.Death
		next.Death = &d
	}
	return &next
}

// Snapshot is the read-only view handed to renderers.
type Snapshot struct {
	Turn             int64      `json:"turn"`
	Status           GameStatus `json:"status"`
	Snake            []Point    `json:"snake"`
	Food             *Point     `json:"food"`
	BonusFood        *Point     `json:"bonusFood"`
	BonusRemainingMS int64      `json:"bonusRemainingMs,omitempty"`
	Score            int        `json:"score"`
	FoodCount        int        `json:"foodCount"`
	Direction        Point      `json:"direction"`
	Death            *Death     `json:"death,omitempty"`
}

// Snapshot builds a view of the state as of now. The returned value shares
// no memory with st.
func (st *State) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Turn:      st.Turn,
		Status:    st.Status,
		Snake:     append([]Point(nil), st.Snake...),
		Score:     st.Score,
		FoodCount: st.FoodCount,
		Direction: st.Direction,
	}
	if InBounds(st.Food) {
		f := st.Food
		s.Food = &f
	}
	if st.Bonus != nil {
		b := st.Bonus.Pos
		s.BonusFood = &b
		s.BonusRemainingMS = int64(bonusRemaining(st.Bonus, now) / time.Millisecond)
	}
	if st.Death != nil {
		d := *st.Death
		s.Death = &d
	}
	return s
}
