package worker

import (
	"time"

	"github.com/battlesnakeio/solo/rules"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "solo",
			Subsystem: "worker",
			Name:      "tick_seconds",
			Help:      "Time spent applying a game tick.",
		},
	)
	gamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "solo",
			Subsystem: "worker",
			Name:      "games_started_total",
			Help:      "Runs started, restarts included.",
		},
	)
	foodEaten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "solo",
			Subsystem: "worker",
			Name:      "food_eaten_total",
			Help:      "Food items eaten, by kind.",
		},
		[]string{"kind"},
	)
	bonusSpawned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "solo",
			Subsystem: "worker",
			Name:      "bonus_spawned_total",
			Help:      "Bonus food items placed.",
		},
	)
	bonusExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "solo",
			Subsystem: "worker",
			Name:      "bonus_expired_total",
			Help:      "Bonus food items that expired uneaten.",
		},
	)
	gameOvers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "solo",
			Subsystem: "worker",
			Name:      "game_overs_total",
			Help:      "Runs ended, by death cause.",
		},
		[]string{"cause"},
	)
)

func init() {
	prometheus.MustRegister(tickDuration, gamesStarted, foodEaten, bonusSpawned, bonusExpired, gameOvers)
}

func observeTick(start time.Time) {
	tickDuration.Observe(time.Since(start).Seconds())
}

// recordTick counts what a tick changed.
func recordTick(prev, next *rules.State) {
	if next.FoodCount > prev.FoodCount {
		foodEaten.WithLabelValues("normal").Inc()
		if next.Bonus != nil && next.FoodCount%rules.BonusEvery == 0 {
			bonusSpawned.Inc()
		}
	}
	if prev.Bonus != nil && next.Bonus == nil && next.Score-prev.Score == rules.BonusScore {
		foodEaten.WithLabelValues("bonus").Inc()
	}
	if prev.Status != rules.GameStatusGameOver && next.Death != nil {
		gameOvers.WithLabelValues(next.Death.Cause).Inc()
	}
}
