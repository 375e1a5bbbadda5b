package testsuite

import (
	"context"
	"sync"
	"testing"

	"github.com/battlesnakeio/solo/controller"
	"github.com/battlesnakeio/solo/worker"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

func newGame() *worker.Game {
	return worker.NewGame(uuid.NewV4().String(), worker.Config{TickInterval: -1})
}

func testStoreGames(t *testing.T, s controller.Store) {
	ctx := context.Background()
	g := newGame()

	// Missing game.
	_, err := s.GetGame(ctx, g.ID)
	require.Equal(t, controller.ErrNotFound, err)

	// Put and fetch.
	require.Nil(t, s.PutGame(ctx, g))
	got, err := s.GetGame(ctx, g.ID)
	require.Nil(t, err)
	require.True(t, got == g, "store should hand back the same game")

	// Put again replaces.
	require.Nil(t, s.PutGame(ctx, g))
	ids, err := s.ListGameIDs(ctx)
	require.Nil(t, err)
	require.Contains(t, ids, g.ID)
}

func testStoreDeleteGame(t *testing.T, s controller.Store) {
	ctx := context.Background()
	g := newGame()

	require.Nil(t, s.PutGame(ctx, g))
	require.Nil(t, s.DeleteGame(ctx, g.ID))

	_, err := s.GetGame(ctx, g.ID)
	require.Equal(t, controller.ErrNotFound, err)

	ids, err := s.ListGameIDs(ctx)
	require.Nil(t, err)
	require.NotContains(t, ids, g.ID)

	// Deleting twice reports the game as missing.
	require.Equal(t, controller.ErrNotFound, s.DeleteGame(ctx, g.ID))
}

func testStoreConcurrentWriters(t *testing.T, s controller.Store) {
	ctx := context.Background()

	games := make([]*worker.Game, 20)
	for i := range games {
		games[i] = newGame()
	}

	var wg sync.WaitGroup
	wg.Add(len(games))
	for _, g := range games {
		go func(g *worker.Game) {
			defer wg.Done()
			_ = s.PutGame(ctx, g)
			_, _ = s.ListGameIDs(ctx)
		}(g)
	}
	wg.Wait()

	ids, err := s.ListGameIDs(ctx)
	require.Nil(t, err)
	for _, g := range games {
		require.Contains(t, ids, g.ID)
	}
}

// Suite will execute the store testsuite.
func Suite(t *testing.T, s controller.Store, pretest func()) {
	s = controller.InstrumentStore(s)
	t.Run("Games", func(t *testing.T) { pretest(); testStoreGames(t, s) })
	t.Run("DeleteGame", func(t *testing.T) { pretest(); testStoreDeleteGame(t, s) })
	t.Run("ConcurrentWriters", func(t *testing.T) { pretest(); testStoreConcurrentWriters(t, s) })
}
