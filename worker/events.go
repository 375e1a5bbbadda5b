package worker

import (
	"github.com/battlesnakeio/solo/rules"
	log "github.com/sirupsen/logrus"
)

// EventType names what happened to a game.
type EventType string

const (
	// EventState is sent after every change of state.
	EventState EventType = "state"
	// EventGameOver is sent once when a run ends in a collision.
	EventGameOver EventType = "game-over"
)

// Event carries the snapshot taken right after the change.
type Event struct {
	Type     EventType      `json:"type"`
	Snapshot rules.Snapshot `json:"snapshot"`
}

// Subscribe returns a channel receiving every event of the game and a func
// to stop receiving. Subscribers that fall behind lose events rather than
// stall the game. The channel is closed when the loop exits or on
// unsubscribe.
func (g *Game) Subscribe() (<-chan Event, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch := make(chan Event, g.cfg.EventBuffer)
	select {
	case <-g.done:
		close(ch)
		return ch, func() {}
	default:
	}

	id := g.nextSub
	g.nextSub++
	g.subs[id] = ch
	return ch, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if c, ok := g.subs[id]; ok {
			delete(g.subs, id)
			close(c)
		}
	}
}

func (g *Game) publish(snap rules.Snapshot, events []Event) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.snapshot = snap
	for id, ch := range g.subs {
		for _, ev := range events {
			select {
			case ch <- ev:
			default:
				log.WithFields(log.Fields{
					"GameID":     g.ID,
					"Subscriber": id,
					"Event":      ev.Type,
				}).Warn("dropping event for slow subscriber")
			}
		}
	}
}

func (g *Game) closeSubscribers() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, ch := range g.subs {
		delete(g.subs, id)
		close(ch)
	}
}
