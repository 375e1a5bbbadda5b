package rules

import (
	"math/rand"
	"time"
)

// Ruleset bundles the randomness and bonus timing a run is played with. A
// Ruleset is not safe for concurrent use when Rand is not.
type Ruleset struct {
	Rand Source
	// BonusLifetime overrides the standard bonus lifetime when positive.
	BonusLifetime time.Duration
}

// StandardRuleset returns a Ruleset seeded from seed with the standard bonus
// lifetime.
func StandardRuleset(seed int64) *Ruleset {
	return &Ruleset{Rand: rand.New(rand.NewSource(seed))}
}

func (r *Ruleset) bonusLifetime() time.Duration {
	if r.BonusLifetime > 0 {
		return r.BonusLifetime
	}
	return BonusLifetime
}

// NewGame creates the initial state of a run and marks it Running. It is
// used for the first Start as well as every restart, and never carries
// anything over from a previous run.
func (r *Ruleset) NewGame() (*State, error) {
	snake := initialSnake()
	food, err := PlaceFood(r.Rand, snake)
	if err != nil {
		return nil, err
	}
	return &State{
		Status:    GameStatusRunning,
		Snake:     snake,
		Food:      food,
		Direction: InitialDirection,
		Heading:   InitialDirection,
	}, nil
}
