package rules

import (
	"time"

	"github.com/pkg/errors"
)

// GameTick runs the game one tick and returns the next state. st is left
// untouched. Ticks on a game that is not Running return an unchanged copy.
//
// The only error is ErrBoardFull (wrapped) when the snake leaves no room for
// food; the returned state is then already marked GameOver.
func (r *Ruleset) GameTick(st *State, now time.Time) (*State, error) {
	next := st.Clone()
	if st.Status != GameStatusRunning {
		return next, nil
	}

	newHead := st.Head().Add(st.Direction)
	if cause := checkForDeath(st.Snake, newHead); cause != "" {
		next.Status = GameStatusGameOver
		next.Death = &Death{Turn: st.Turn + 1, Cause: cause}
		return next, nil
	}

	body := make([]Point, 0, len(st.Snake)+1)
	body = append(body, newHead)
	body = append(body, st.Snake...)
	next.Snake = body
	next.Heading = st.Direction
	next.Turn = st.Turn + 1

	switch {
	case newHead.Equal(st.Food):
		food, err := PlaceFood(r.Rand, body)
		if err != nil {
			next.Score += FoodScore
			next.FoodCount++
			next.Food = Point{X: -1, Y: -1}
			next.Status = GameStatusGameOver
			next.Death = &Death{Turn: next.Turn, Cause: DeathCauseBoardFull}
			return next, errors.Wrapf(err, "placing food on turn %d", next.Turn)
		}
		next.Food = food
		next.Score += FoodScore
		r.spawnBonus(next, now)
	case st.Bonus != nil && newHead.Equal(st.Bonus.Pos):
		next.Bonus = nil
		next.Score += BonusScore
	default:
		next.Snake = body[:len(body)-1]
	}
	return next, nil
}
