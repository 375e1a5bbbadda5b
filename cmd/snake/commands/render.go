package commands

import (
	"fmt"

	"github.com/battlesnakeio/solo/rules"
	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	headColor    = termbox.ColorYellow
	foodColor    = termbox.ColorRed
	bonusColor   = termbox.ColorMagenta

	// Cells are two columns wide so the board looks square.
	cellWidth = 2
	boardLeft = 4
	boardTop  = 2
)

var helpLines = []string{
	"arrows/wasd  steer",
	"enter        start",
	"space/p      pause",
	"esc/q        quit",
}

func render(title string, snap rules.Snapshot) error {
	err := termbox.Clear(defaultColor, defaultColor)
	if err != nil {
		return err
	}

	width := rules.GridSize * cellWidth
	renderTitle(boardLeft, boardTop, title, snap.Turn)
	renderBoard(boardTop, boardTop+rules.GridSize+1, boardLeft, width)

	if snap.Food != nil {
		renderCell(*snap.Food, '●', foodColor, bgColor)
	}
	if snap.BonusFood != nil {
		renderCell(*snap.BonusFood, '★', bonusColor, bgColor)
	}
	renderSnake(snap.Snake)

	y := boardTop + 1
	for _, line := range append(statusLines(snap), append([]string{""}, helpLines...)...) {
		tbprint(boardLeft+width+3, y, defaultColor, defaultColor, line)
		y++
	}
	return termbox.Flush()
}

// statusLines describes the game next to the board.
func statusLines(snap rules.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Status: %s", snap.Status),
	}
	switch snap.Status {
	case rules.GameStatusIdle:
		lines = append(lines, "Press enter to start")
	case rules.GameStatusPaused:
		lines = append(lines, "Paused")
	case rules.GameStatusGameOver:
		lines = append(lines, "Game over!")
		if snap.Death != nil {
			lines = append(lines, fmt.Sprintf("Cause: %s", snap.Death.Cause))
		}
		lines = append(lines, "Press enter to play again")
	}
	if snap.BonusFood != nil {
		lines = append(lines, fmt.Sprintf("Bonus: %.1fs", float64(snap.BonusRemainingMS)/1000))
	}
	return lines
}

func renderSnake(body []rules.Point) {
	for i := len(body) - 1; i >= 0; i-- {
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		renderCell(body[i], ' ', color, color)
	}
}

func renderCell(p rules.Point, ch rune, fg, bg termbox.Attribute) {
	x := boardLeft + p.X*cellWidth
	y := boardTop + p.Y + 1
	termbox.SetCell(x, y, ch, fg, bg)
	termbox.SetCell(x+1, y, ' ', fg, bg)
}

func renderBoard(top, bottom, left, width int) {
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', defaultColor, bgColor)
		termbox.SetCell(left+width, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left-1, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(left+width, top, '┐', defaultColor, bgColor)
	termbox.SetCell(left+width, bottom, '┘', defaultColor, bgColor)

	fill(left, top, width, 1, termbox.Cell{Ch: '─'})
	fill(left, bottom, width, 1, termbox.Cell{Ch: '─'})
}

func renderTitle(left, top int, title string, turn int64) {
	tbprint(left, top-1, defaultColor, defaultColor, fmt.Sprintf("%s - Turn %d", title, turn))
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
