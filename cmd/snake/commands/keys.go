package commands

import (
	"unicode"

	"github.com/battlesnakeio/solo/rules"
	termbox "github.com/nsf/termbox-go"
)

type action int

const (
	actionNone action = iota
	actionDirection
	actionStart
	actionPause
	actionQuit
)

// keyAction maps a terminal event to what the player asked for. dir is only
// set for actionDirection.
func keyAction(ev termbox.Event) (a action, dir rules.Point) {
	if ev.Type != termbox.EventKey {
		return actionNone, dir
	}

	switch ev.Key {
	case termbox.KeyArrowUp:
		return actionDirection, rules.Up
	case termbox.KeyArrowDown:
		return actionDirection, rules.Down
	case termbox.KeyArrowLeft:
		return actionDirection, rules.Left
	case termbox.KeyArrowRight:
		return actionDirection, rules.Right
	case termbox.KeyEnter:
		return actionStart, dir
	case termbox.KeySpace:
		return actionPause, dir
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return actionQuit, dir
	}

	switch ch := unicode.ToLower(ev.Ch); ch {
	case 'p':
		return actionPause, dir
	case 'q':
		return actionQuit, dir
	case 'w', 'a', 's', 'd':
		d, err := rules.ParseDirection(string(ch))
		if err != nil {
			return actionNone, dir
		}
		return actionDirection, d
	}
	return actionNone, dir
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}
