package commands

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/url"
	"strings"
	"time"

	"github.com/battlesnakeio/solo/api"
	"github.com/battlesnakeio/solo/rules"
	"github.com/battlesnakeio/solo/worker"
	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watches, and plays, a game running on the snake server",
	Args:  requireGameID,
	Run: func(*cobra.Command, []string) {
		if err := watchGame(); err != nil {
			fmt.Println("watch failed:", err)
		}
	},
}

// socketURL turns the api address into the websocket address of a game.
func socketURL(addr, id string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", errors.Wrap(err, "invalid api address")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	default:
		return "", errors.Errorf("unsupported api scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/socket/" + id
	return u.String(), nil
}

// readSnapshots feeds the holder from the socket until it closes.
func readSnapshots(c *websocket.Conn, snapshots *snapshotHolder) {
	defer snapshots.finish()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("read")
			}
			return
		}

		switch mt {
		case websocket.TextMessage:
			ev := worker.Event{}
			if err := json.Unmarshal(message, &ev); err != nil {
				log.WithError(err).Warn("unmarshal event")
				return
			}
			snapshots.append(ev.Snapshot)
		default:
			log.WithField("type", mt).Debug("unhandled message type")
		}
	}
}

func watchGame() error {
	addr, err := socketURL(apiAddr, gameID)
	if err != nil {
		return err
	}
	c, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return errors.Wrapf(err, "dial %s", addr)
	}
	defer c.Close()

	snapshots := newSnapshotHolder()
	go readSnapshots(c, snapshots)

	select {
	case <-snapshots.initialSnapshot():
	case <-time.After(2 * time.Second):
		return errors.New("unable to find initial snapshot for game")
	}

	log.SetOutput(ioutil.Discard)
	if err = termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	title := fmt.Sprintf("Snake %s", gameID)
	keys := setupEventQueue()

	if err := render(title, snapshots.get()); err != nil {
		return err
	}
	for {
		select {
		case ev := <-keys:
			a, dir := keyAction(ev)
			var msg api.ClientMessage
			switch a {
			case actionQuit:
				return c.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			case actionStart:
				msg.Action = "start"
			case actionPause:
				msg.Action = "pause"
			case actionDirection:
				msg.Action = rules.DirectionName(dir)
			default:
				continue
			}
			if err := c.WriteJSON(msg); err != nil {
				return errors.Wrap(err, "sending action")
			}
		case <-snapshots.updated():
			if err := render(title, snapshots.get()); err != nil {
				return err
			}
		case <-snapshots.finished():
			tbprint(0, 0, defaultColor, defaultColor, "Game ended. Press any key to exit...")
			if err := termbox.Flush(); err != nil {
				return err
			}
			<-keys
			return nil
		}
	}
}
