package controller

import (
	"context"

	"github.com/battlesnakeio/solo/worker"
	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "solo",
			Subsystem: "controller",
			Name:      "store_calls",
			Help:      "Calls processed by the store.",
		},
		[]string{"method"},
	)
	liveGames = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "solo",
			Subsystem: "controller",
			Name:      "live_games",
			Help:      "Game sessions with a running loop.",
		},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return t.ObserveDuration
}

func init() {
	prometheus.MustRegister(storeCalls, liveGames)
}

type metrics struct{ s Store }

func (m *metrics) PutGame(c context.Context, g *worker.Game) error {
	defer instrument("PutGame")()
	return m.s.PutGame(c, g)
}

func (m *metrics) GetGame(c context.Context, id string) (*worker.Game, error) {
	defer instrument("GetGame")()
	return m.s.GetGame(c, id)
}

func (m *metrics) DeleteGame(c context.Context, id string) error {
	defer instrument("DeleteGame")()
	return m.s.DeleteGame(c, id)
}

func (m *metrics) ListGameIDs(c context.Context) ([]string, error) {
	defer instrument("ListGameIDs")()
	return m.s.ListGameIDs(c)
}
