package api

import (
	"context"
	"net/http"

	"github.com/battlesnakeio/solo/rules"
	"github.com/battlesnakeio/solo/worker"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
)

// watchGame streams the events of a game as JSON text frames, starting with
// the current snapshot. Clients may send ClientMessage frames to play.
func (s *Server) watchGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	g, err := s.ctrl.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).WithField("GameID", g.ID).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, unsubscribe := g.Subscribe()
	defer unsubscribe()

	logger := log.WithFields(log.Fields{"GameID": g.ID, "Remote": r.RemoteAddr})
	logger.Info("watcher connected")
	defer logger.Info("watcher disconnected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		s.readActions(ctx, conn, g)
	}()

	if err := conn.WriteJSON(worker.Event{Type: worker.EventState, Snapshot: g.Snapshot()}); err != nil {
		return
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game ended"))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				logger.WithError(err).Debug("write error")
				return
			}
		case <-closed:
			return
		}
	}
}

// readActions applies client messages until the connection fails.
func (s *Server) readActions(ctx context.Context, conn *websocket.Conn, g *worker.Game) {
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		var err error
		switch msg.Action {
		case "start":
			err = g.Start(ctx)
		case "pause":
			err = g.TogglePause(ctx)
		default:
			var dir rules.Point
			dir, err = rules.ParseDirection(msg.Action)
			if err != nil {
				break
			}
			if !s.limiter(g).Allow() {
				err = errRateLimited
				break
			}
			err = g.SetDirection(ctx, dir)
		}
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"GameID": g.ID,
				"Action": msg.Action,
			}).Debug("ignoring websocket action")
		}
	}
}
