package worker

import (
	"context"
	"time"

	"github.com/battlesnakeio/solo/rules"
	log "github.com/sirupsen/logrus"
)

type commandKind int

const (
	commandStart commandKind = iota
	commandTogglePause
	commandDirection
	commandTick
)

type command struct {
	kind      commandKind
	direction rules.Point
	result    chan error
}

// Start begins a fresh run from any status, discarding the previous one
// along with its pending bonus timer.
func (g *Game) Start(ctx context.Context) error {
	return g.send(ctx, command{kind: commandStart})
}

// TogglePause switches between Running and Paused. It does nothing in
// Idle or GameOver.
func (g *Game) TogglePause(ctx context.Context) error {
	return g.send(ctx, command{kind: commandTogglePause})
}

// SetDirection requests a new heading. Reversals are silently dropped;
// vectors that are not a unit direction return rules.ErrInvalidDirection.
func (g *Game) SetDirection(ctx context.Context, dir rules.Point) error {
	return g.send(ctx, command{kind: commandDirection, direction: dir})
}

// Tick advances the game one step. It is meant for games configured with an
// external tick source but works with the internal one as well.
func (g *Game) Tick(ctx context.Context) error {
	return g.send(ctx, command{kind: commandTick})
}

// send hands cmd to the loop and waits until it has been applied.
func (g *Game) send(ctx context.Context, cmd command) error {
	cmd.result = make(chan error, 1)
	select {
	case g.commands <- cmd:
	case <-g.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// The loop replies before it can exit, so the result is always there.
	select {
	case err := <-cmd.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Game) apply(cmd command) error {
	now := time.Now()
	switch cmd.kind {
	case commandStart:
		next, err := g.ruleset.NewGame()
		if err != nil {
			return err
		}
		gamesStarted.Inc()
		// Restart the tick source so the first move comes a full period
		// after Start.
		g.stopTicker()
		g.setState(next, now)
	case commandTogglePause:
		g.setState(rules.TogglePause(g.state, now, g.cfg.FreezeBonusOnPause), now)
	case commandDirection:
		next, err := rules.SetDirection(g.state, cmd.direction)
		if err != nil {
			return err
		}
		if !next.Direction.Equal(g.state.Direction) {
			log.WithFields(log.Fields{
				"GameID":    g.ID,
				"Turn":      next.Turn,
				"Direction": rules.DirectionName(next.Direction),
			}).Debug("direction accepted")
		}
		g.setState(next, now)
	case commandTick:
		g.tick()
	}
	return nil
}
