// Package controller keeps track of the game sessions served by the api. Each
// session is a worker.Game whose loop runs in its own goroutine until the
// session is ended or the controller is closed.
package controller

import (
	"context"
	"sync"

	"github.com/battlesnakeio/solo/worker"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// New will initialize a new Controller. A maxGames of zero or less means no
// limit. cfg is handed to every game; leave cfg.Source nil so each game gets
// its own random source.
func New(store Store, cfg worker.Config, maxGames int) *Controller {
	return &Controller{
		Store:    store,
		cfg:      cfg,
		maxGames: maxGames,
		cancels:  map[string]context.CancelFunc{},
	}
}

// Controller creates, looks up and ends game sessions.
type Controller struct {
	Store Store

	cfg      worker.Config
	maxGames int

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// Create registers a new Idle game and starts its loop.
func (c *Controller) Create(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxGames > 0 && len(c.cancels) >= c.maxGames {
		return "", ErrTooManyGames
	}

	id := uuid.NewV4().String()
	g := worker.NewGame(id, c.cfg)
	if err := c.Store.PutGame(ctx, g); err != nil {
		return "", errors.Wrap(err, "storing game")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancels[id] = cancel
	liveGames.Inc()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer liveGames.Dec()
		if err := g.Run(runCtx); err != nil && err != context.Canceled {
			log.WithError(err).WithField("GameID", id).Error("game loop failed")
		}
	}()

	log.WithField("GameID", id).Info("game created")
	return id, nil
}

// Get fetches a live game.
func (c *Controller) Get(ctx context.Context, id string) (*worker.Game, error) {
	return c.Store.GetGame(ctx, id)
}

// List returns the ids of all live games.
func (c *Controller) List(ctx context.Context) ([]string, error) {
	return c.Store.ListGameIDs(ctx)
}

// End stops the loop of a game and forgets it. It waits for the loop to exit
// or ctx to be done.
func (c *Controller) End(ctx context.Context, id string) error {
	g, err := c.Store.GetGame(ctx, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	cancel, ok := c.cancels[id]
	delete(c.cancels, id)
	c.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	cancel()
	if err := c.Store.DeleteGame(ctx, id); err != nil && err != ErrNotFound {
		return errors.Wrap(err, "deleting game")
	}

	select {
	case <-g.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	log.WithField("GameID", id).Info("game ended")
	return nil
}

// Close ends every game and waits for all loops to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	ids := make([]string, 0, len(c.cancels))
	for id, cancel := range c.cancels {
		cancel()
		ids = append(ids, id)
	}
	c.cancels = map[string]context.CancelFunc{}
	c.mu.Unlock()

	for _, id := range ids {
		if err := c.Store.DeleteGame(context.Background(), id); err != nil && err != ErrNotFound {
			log.WithError(err).WithField("GameID", id).Warn("unable to delete game")
		}
	}
	c.wg.Wait()
}
