package controller_test

import (
	"context"
	"testing"

	"github.com/battlesnakeio/solo/controller"
	"github.com/battlesnakeio/solo/controller/testsuite"
	"github.com/battlesnakeio/solo/worker"
	"github.com/stretchr/testify/require"
)

func TestInMemStore(t *testing.T) {
	testsuite.Suite(t, controller.InMemStore(), func() {})
}

func TestInMemStore_ListSorted(t *testing.T) {
	ctx := context.Background()
	s := controller.InMemStore()
	for _, id := range []string{"c", "a", "b"} {
		require.Nil(t, s.PutGame(ctx, worker.NewGame(id, worker.Config{TickInterval: -1})))
	}

	ids, err := s.ListGameIDs(ctx)
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b", "c"}, ids)
}
