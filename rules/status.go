package rules

import "time"

// GameStatus is the lifecycle state of a run.
type GameStatus string

const (
	// GameStatusIdle is a game that has never been started
	GameStatusIdle GameStatus = "idle"
	// GameStatusRunning represents a running game
	GameStatusRunning GameStatus = "running"
	// GameStatusPaused is a running game frozen by the player
	GameStatusPaused GameStatus = "paused"
	// GameStatusGameOver represents a game that ended in a collision
	GameStatusGameOver GameStatus = "game-over"
)

// TogglePause flips a Running game to Paused and back. Idle and GameOver
// games are returned unchanged. The bonus clock is frozen as well when
// freezeBonus is set.
func TogglePause(st *State, now time.Time, freezeBonus bool) *State {
	next := st.Clone()
	switch st.Status {
	case GameStatusRunning:
		next.Status = GameStatusPaused
		if freezeBonus {
			PauseBonus(next, now)
		}
	case GameStatusPaused:
		next.Status = GameStatusRunning
		if freezeBonus {
			ResumeBonus(next, now)
		}
	}
	return next
}
