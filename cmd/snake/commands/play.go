package commands

import (
	"context"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/battlesnakeio/solo/config"
	"github.com/battlesnakeio/solo/worker"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "plays a game of snake in the terminal",
	Run: func(*cobra.Command, []string) {
		if err := playGame(); err != nil {
			fmt.Println("game failed:", err)
		}
	},
}

// countdownRefresh redraws the board while a bonus is up so its timer moves.
const countdownRefresh = 100 * time.Millisecond

func playGame() error {
	// Log lines would draw over the board.
	log.SetOutput(ioutil.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := worker.NewGame("local", worker.Config{
		FreezeBonusOnPause: config.FreezeBonusOnPause,
		EventBuffer:        config.EventBuffer,
	})
	events, unsubscribe := g.Subscribe()
	defer unsubscribe()
	go func() {
		_ = g.Run(ctx)
	}()

	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	keys := setupEventQueue()
	refresh := time.NewTicker(countdownRefresh)
	defer refresh.Stop()

	if err := render("Snake", g.Snapshot()); err != nil {
		return err
	}
	for {
		select {
		case ev := <-keys:
			a, dir := keyAction(ev)
			var err error
			switch a {
			case actionQuit:
				return nil
			case actionStart:
				err = g.Start(ctx)
			case actionPause:
				err = g.TogglePause(ctx)
			case actionDirection:
				err = g.SetDirection(ctx, dir)
			}
			if err != nil {
				return err
			}
			if ev.Type == termbox.EventResize {
				if err := render("Snake", g.Snapshot()); err != nil {
					return err
				}
			}
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := render("Snake", g.Snapshot()); err != nil {
				return err
			}
		case <-refresh.C:
			if snap := g.Snapshot(); snap.BonusFood != nil {
				if err := render("Snake", snap); err != nil {
					return err
				}
			}
		}
	}
}
