package controller

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/battlesnakeio/solo/worker"
)

var (
	// ErrNotFound is returned when a game is not found.
	ErrNotFound = errors.New("controller: game not found")
	// ErrTooManyGames is returned by Create once the session limit is reached.
	ErrTooManyGames = errors.New("controller: too many games")
)

// Store holds the live game sessions.
type Store interface {
	PutGame(context.Context, *worker.Game) error
	GetGame(context.Context, string) (*worker.Game, error)
	DeleteGame(context.Context, string) error
	ListGameIDs(context.Context) ([]string, error)
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		games: map[string]*worker.Game{},
	}
}

type inmem struct {
	games map[string]*worker.Game
	lock  sync.RWMutex
}

func (in *inmem) PutGame(ctx context.Context, g *worker.Game) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	in.games[g.ID] = g
	return nil
}

func (in *inmem) GetGame(ctx context.Context, id string) (*worker.Game, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	if g, ok := in.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (in *inmem) DeleteGame(ctx context.Context, id string) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return ErrNotFound
	}
	delete(in.games, id)
	return nil
}

// ListGameIDs returns the ids sorted.
func (in *inmem) ListGameIDs(ctx context.Context) ([]string, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	ids := make([]string, 0, len(in.games))
	for id := range in.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
