package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcceptDirectionRejectsReversal(t *testing.T) {
	require.Equal(t, Down, AcceptDirection(Down, Up))
	require.Equal(t, Up, AcceptDirection(Up, Down))
	require.Equal(t, Left, AcceptDirection(Left, Right))
	require.Equal(t, Right, AcceptDirection(Right, Left))
}

func TestAcceptDirectionPerpendicularAndRepeat(t *testing.T) {
	for _, current := range []Point{Up, Down, Left, Right} {
		for _, requested := range []Point{Up, Down, Left, Right} {
			got := AcceptDirection(current, requested)
			if requested.X == -current.X && requested.Y == -current.Y {
				require.Equal(t, current, got)
				continue
			}
			require.Equal(t, requested, got, "%v -> %v", current, requested)
		}
	}
}

func TestSetDirectionLatestWins(t *testing.T) {
	st := runningState(Point{X: 9, Y: 9}, Point{X: 2, Y: 2}, Point{X: 2, Y: 1})

	next, err := SetDirection(st, Left)
	require.NoError(t, err)
	next, err = SetDirection(next, Right)
	require.NoError(t, err)
	require.Equal(t, Right, next.Direction)
	require.Equal(t, Down, st.Direction)
}

func TestSetDirectionGatesOnLastMove(t *testing.T) {
	st := runningState(Point{X: 9, Y: 9}, Point{X: 2, Y: 2}, Point{X: 2, Y: 1})

	// Left is accepted, but the snake still travels down until the next
	// tick, so a following Up must not slip through.
	next, err := SetDirection(st, Left)
	require.NoError(t, err)
	next, err = SetDirection(next, Up)
	require.NoError(t, err)
	require.Equal(t, Left, next.Direction)
}

func TestSetDirectionInvalid(t *testing.T) {
	st := runningState(Point{X: 9, Y: 9}, Point{X: 2, Y: 2}, Point{X: 2, Y: 1})
	for _, d := range []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}} {
		_, err := SetDirection(st, d)
		require.Equal(t, ErrInvalidDirection, err)
	}
}

func TestSetDirectionIgnoredWhenNotPlaying(t *testing.T) {
	for _, status := range []GameStatus{GameStatusIdle, GameStatusGameOver} {
		st := runningState(Point{X: 9, Y: 9}, Point{X: 2, Y: 2}, Point{X: 2, Y: 1})
		st.Status = status
		next, err := SetDirection(st, Left)
		require.NoError(t, err)
		require.Equal(t, Down, next.Direction)
	}

	st := runningState(Point{X: 9, Y: 9}, Point{X: 2, Y: 2}, Point{X: 2, Y: 1})
	st.Status = GameStatusPaused
	next, err := SetDirection(st, Left)
	require.NoError(t, err)
	require.Equal(t, Left, next.Direction)
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Point{
		"up": Up, "Down": Down, " left ": Left, "RIGHT": Right,
		"w": Up, "s": Down, "a": Left, "d": Right,
	}
	for name, want := range cases {
		got, err := ParseDirection(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, DirectionName(want), DirectionName(got))
	}

	_, err := ParseDirection("sideways")
	require.Equal(t, ErrInvalidDirection, err)
}
