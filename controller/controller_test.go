package controller

import (
	"context"
	"testing"
	"time"

	"github.com/battlesnakeio/solo/rules"
	"github.com/battlesnakeio/solo/worker"
	"github.com/stretchr/testify/require"
)

func newController(maxGames int) *Controller {
	return New(InstrumentStore(InMemStore()), worker.Config{TickInterval: -1}, maxGames)
}

func TestController_Games(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(0)
	defer ctrl.Close()

	id, err := ctrl.Create(ctx)
	require.Nil(t, err)
	require.NotEmpty(t, id)

	// Should get above game, Idle until started.
	g, err := ctrl.Get(ctx, id)
	require.Nil(t, err)
	require.Equal(t, id, g.ID)
	require.Equal(t, rules.GameStatusIdle, g.Snapshot().Status)

	require.Nil(t, g.Start(ctx))
	require.Equal(t, rules.GameStatusRunning, g.Snapshot().Status)

	ids, err := ctrl.List(ctx)
	require.Nil(t, err)
	require.Equal(t, []string{id}, ids)
}

func TestController_End(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(0)
	defer ctrl.Close()

	id, err := ctrl.Create(ctx)
	require.Nil(t, err)
	g, err := ctrl.Get(ctx, id)
	require.Nil(t, err)

	require.Nil(t, ctrl.End(ctx, id))

	select {
	case <-g.Done():
	default:
		require.Fail(t, "game loop still running after End")
	}
	require.Equal(t, worker.ErrStopped, g.Start(ctx))

	_, err = ctrl.Get(ctx, id)
	require.Equal(t, ErrNotFound, err)
	require.Equal(t, ErrNotFound, ctrl.End(ctx, id))
}

func TestController_TooManyGames(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(2)
	defer ctrl.Close()

	first, err := ctrl.Create(ctx)
	require.Nil(t, err)
	_, err = ctrl.Create(ctx)
	require.Nil(t, err)

	_, err = ctrl.Create(ctx)
	require.Equal(t, ErrTooManyGames, err)

	// Ending a game frees a slot.
	require.Nil(t, ctrl.End(ctx, first))
	_, err = ctrl.Create(ctx)
	require.Nil(t, err)
}

func TestController_Close(t *testing.T) {
	ctx := context.Background()
	ctrl := newController(0)

	var games []*worker.Game
	for i := 0; i < 3; i++ {
		id, err := ctrl.Create(ctx)
		require.Nil(t, err)
		g, err := ctrl.Get(ctx, id)
		require.Nil(t, err)
		games = append(games, g)
	}

	closed := make(chan struct{})
	go func() {
		ctrl.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		require.Fail(t, "close did not return")
	}

	for _, g := range games {
		<-g.Done()
	}
	ids, err := ctrl.List(ctx)
	require.Nil(t, err)
	require.Empty(t, ids)
}
