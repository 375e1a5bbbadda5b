package rules

import "time"

// spawnBonus runs the consumption step for a normal food item: it bumps the
// food count and, on every BonusEvery-th item, places a bonus away from the
// snake and the current food. A board with no room left for the bonus just
// skips it.
func (r *Ruleset) spawnBonus(st *State, now time.Time) {
	st.FoodCount++
	if st.FoodCount%BonusEvery != 0 {
		return
	}
	occupied := append(append([]Point(nil), st.Snake...), st.Food)
	p, err := PlaceFood(r.Rand, occupied)
	if err != nil {
		return
	}
	st.Bonus = &BonusFood{
		Pos:     p,
		Expires: now.Add(r.bonusLifetime()),
	}
}

// ExpireBonus clears the bonus if its deadline has passed. It reports
// whether anything was removed.
func ExpireBonus(st *State, now time.Time) (*State, bool) {
	next := st.Clone()
	b := st.Bonus
	if b == nil || b.Remaining > 0 || now.Before(b.Expires) {
		return next, false
	}
	next.Bonus = nil
	return next, true
}

// PauseBonus freezes the bonus clock, remembering how long was left.
func PauseBonus(st *State, now time.Time) {
	if st.Bonus == nil || st.Bonus.Remaining > 0 {
		return
	}
	remaining := st.Bonus.Expires.Sub(now)
	if remaining <= 0 {
		// Already due; the pending expiry clears it.
		return
	}
	st.Bonus.Remaining = remaining
}

// ResumeBonus restarts a frozen bonus clock from now.
func ResumeBonus(st *State, now time.Time) {
	if st.Bonus == nil || st.Bonus.Remaining <= 0 {
		return
	}
	st.Bonus.Expires = now.Add(st.Bonus.Remaining)
	st.Bonus.Remaining = 0
}

// BonusDeadline returns when the bonus of st is due to expire. ok is false
// when there is no bonus or its clock is frozen.
func BonusDeadline(st *State) (deadline time.Time, ok bool) {
	if st.Bonus == nil || st.Bonus.Remaining > 0 {
		return time.Time{}, false
	}
	return st.Bonus.Expires, true
}

func bonusRemaining(b *BonusFood, now time.Time) time.Duration {
	if b.Remaining > 0 {
		return b.Remaining
	}
	d := b.Expires.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
