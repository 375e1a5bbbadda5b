// Package worker provides the actual running of games. It owns the state of
// a single game and is the only writer to it: ticks, player commands and the
// bonus food timer are all applied by one loop, in the order they arrive.
package worker

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/battlesnakeio/solo/rules"
	log "github.com/sirupsen/logrus"
)

// ErrStopped is returned by commands sent to a game whose loop has exited.
var ErrStopped = errors.New("worker: game is not running")

// Config tunes a Game. The zero value plays by the standard rules.
type Config struct {
	// TickInterval is the period of the internal tick source. Zero means
	// rules.TickInterval, a negative value disables it so an external
	// scheduler drives the game through Tick.
	TickInterval time.Duration
	// BonusLifetime overrides rules.BonusLifetime when positive.
	BonusLifetime time.Duration
	// FreezeBonusOnPause stops the bonus clock while the game is paused.
	// By default the bonus keeps expiring in real time.
	FreezeBonusOnPause bool
	// EventBuffer is the capacity of each subscriber channel.
	EventBuffer int
	// Source feeds food placement. Defaults to a time seeded *rand.Rand.
	Source rules.Source
}

func (c Config) withDefaults() Config {
	if c.TickInterval == 0 {
		c.TickInterval = rules.TickInterval
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = 16
	}
	if c.Source == nil {
		c.Source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// Game is a single-writer container for one game's state.
type Game struct {
	ID string

	cfg      Config
	ruleset  *rules.Ruleset
	commands chan command
	done     chan struct{}
	runOnce  sync.Once

	mu       sync.RWMutex
	snapshot rules.Snapshot
	subs     map[int]chan Event
	nextSub  int

	// Owned by the Run loop.
	state         *rules.State
	ticker        *time.Ticker
	bonusTimer    *time.Timer
	bonusDeadline time.Time
}

// NewGame returns an Idle game. Nothing happens until Run is called.
func NewGame(id string, cfg Config) *Game {
	cfg = cfg.withDefaults()
	g := &Game{
		ID:  id,
		cfg: cfg,
		ruleset: &rules.Ruleset{
			Rand:          cfg.Source,
			BonusLifetime: cfg.BonusLifetime,
		},
		commands: make(chan command),
		done:     make(chan struct{}),
		subs:     map[int]chan Event{},
		state:    rules.NewIdleState(),
	}
	g.snapshot = g.state.Snapshot(time.Now())
	return g
}

// Run processes ticks, commands and bonus expiry until ctx is done. It must
// be called exactly once; later calls return ErrStopped immediately.
func (g *Game) Run(ctx context.Context) error {
	err := ErrStopped
	g.runOnce.Do(func() {
		err = g.run(ctx)
	})
	return err
}

func (g *Game) run(ctx context.Context) error {
	log.WithField("GameID", g.ID).Info("game loop started")
	defer func() {
		g.stopTicker()
		g.stopBonusTimer()
		close(g.done)
		g.closeSubscribers()
		log.WithField("GameID", g.ID).Info("game loop stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-g.commands:
			cmd.result <- g.apply(cmd)
		case <-g.tickC():
			g.tick()
		case <-g.bonusC():
			g.expireBonus()
		}
	}
}

// Done is closed once the loop has exited.
func (g *Game) Done() <-chan struct{} { return g.done }

// Snapshot returns the state as of the last change. It never observes a
// partially applied tick.
func (g *Game) Snapshot() rules.Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot
}

func (g *Game) tick() {
	start := time.Now()
	defer observeTick(start)

	prev := g.state
	next, err := g.ruleset.GameTick(prev, start)
	if err != nil {
		// GameTick already ended the run; a Start begins a fresh one.
		log.WithError(err).
			WithField("GameID", g.ID).
			Error("ending game due to fatal error")
	}
	if next.Turn != prev.Turn {
		log.WithFields(log.Fields{
			"GameID": g.ID,
			"Turn":   next.Turn,
			"Head":   next.Head(),
		}).Debug("tick")
	}
	recordTick(prev, next)
	g.setState(next, start)
}

func (g *Game) expireBonus() {
	now := time.Now()
	g.bonusTimer = nil
	g.bonusDeadline = time.Time{}

	next, expired := rules.ExpireBonus(g.state, now)
	if expired {
		bonusExpired.Inc()
		log.WithFields(log.Fields{
			"GameID": g.ID,
			"Turn":   next.Turn,
		}).Info("bonus food expired")
	}
	// A timer that fired early is re-armed by setState.
	g.setState(next, now)
}

// setState swaps in next, brings the clocks in line with it, publishes the
// snapshot and notifies subscribers.
func (g *Game) setState(next *rules.State, now time.Time) {
	prev := g.state
	g.state = next
	g.syncTicker()
	g.syncBonusTimer(now)

	if prev.Status != next.Status {
		fields := log.Fields{
			"GameID": g.ID,
			"Turn":   next.Turn,
			"Status": next.Status,
			"Score":  next.Score,
		}
		if next.Death != nil {
			fields["Cause"] = next.Death.Cause
		}
		log.WithFields(fields).Info("game status changed")
	}

	snap := next.Snapshot(now)
	events := []Event{{Type: EventState, Snapshot: snap}}
	if prev.Status != rules.GameStatusGameOver && next.Status == rules.GameStatusGameOver {
		events = append(events, Event{Type: EventGameOver, Snapshot: snap})
	}
	g.publish(snap, events)
}

func (g *Game) tickC() <-chan time.Time {
	if g.ticker == nil {
		return nil
	}
	return g.ticker.C
}

func (g *Game) bonusC() <-chan time.Time {
	if g.bonusTimer == nil {
		return nil
	}
	return g.bonusTimer.C
}

// syncTicker runs the tick source only while the game is Running.
func (g *Game) syncTicker() {
	running := g.state.Status == rules.GameStatusRunning && g.cfg.TickInterval > 0
	switch {
	case running && g.ticker == nil:
		g.ticker = time.NewTicker(g.cfg.TickInterval)
	case !running && g.ticker != nil:
		g.stopTicker()
	}
}

func (g *Game) stopTicker() {
	if g.ticker != nil {
		g.ticker.Stop()
		g.ticker = nil
	}
}

// syncBonusTimer keeps exactly one timer armed for the current bonus
// deadline. Any change of deadline cancels and replaces the pending timer,
// and no deadline means no timer.
func (g *Game) syncBonusTimer(now time.Time) {
	deadline, ok := rules.BonusDeadline(g.state)
	if !ok {
		g.stopBonusTimer()
		return
	}
	if g.bonusTimer != nil && deadline.Equal(g.bonusDeadline) {
		return
	}
	g.stopBonusTimer()
	g.bonusTimer = time.NewTimer(deadline.Sub(now))
	g.bonusDeadline = deadline
}

func (g *Game) stopBonusTimer() {
	if g.bonusTimer != nil {
		g.bonusTimer.Stop()
		g.bonusTimer = nil
	}
	g.bonusDeadline = time.Time{}
}
