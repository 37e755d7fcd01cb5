package commands

import (
	"errors"
	"fmt"

	"github.com/battlesnakeio/snake/game"
	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	headColor    = termbox.ColorYellow
	deadColor    = termbox.ColorRed
	foodColor    = termbox.ColorRed

	left = 2
	top  = 2
)

// render draws a frame. It satisfies worker.PresenterFunc.
func render(g *game.Game, frame *game.GameFrame) error {
	if frame == nil {
		return errors.New("received nil frame")
	}
	err := termbox.Clear(defaultColor, defaultColor)
	if err != nil {
		return err
	}

	bottom := top + int(g.Height) + 1

	length := 0
	if frame.Snake != nil {
		length = frame.Snake.Len()
	}
	renderTitle(left, top, frame.Turn, length)
	renderBoard(g, top, bottom, left)
	renderFood(left, top, frame.Food)
	renderSnake(left, top, frame.Snake)
	if frame.Over() {
		renderGameOver(g, left, top, frame.Snake)
	}

	return termbox.Flush()
}

func renderSnake(left, top int, s *game.Snake) {
	if s == nil {
		return
	}
	color := snakeColor
	if !s.Alive() {
		color = deadColor
	}
	for i := len(s.Body) - 1; i >= 0; i-- {
		b := s.Body[i]
		c := color
		if i == 0 && s.Alive() {
			c = headColor
		}
		termbox.SetCell(left+int(b.X), top+int(b.Y)+1, ' ', c, c)
	}
}

func renderFood(left, top int, f *game.Food) {
	if f == nil {
		return
	}
	termbox.SetCell(left+int(f.Position.X), top+int(f.Position.Y)+1, '●', foodColor, bgColor)
}

func renderGameOver(g *game.Game, left, top int, s *game.Snake) {
	msg := "GAME OVER"
	if s != nil && s.Death != nil {
		msg = fmt.Sprintf("GAME OVER - %s", s.Death.Cause)
	}
	x := left + (int(g.Width)-runewidth.StringWidth(msg))/2
	if x < left {
		x = left
	}
	y := top + int(g.Height)/2 + 1
	tbprint(x, y, termbox.ColorWhite|termbox.AttrBold, deadColor, msg)
}

func renderBoard(g *game.Game, top, bottom, left int) {
	for i := top + 1; i < bottom; i++ {
		termbox.SetCell(left-1, i, '│', defaultColor, bgColor)
		termbox.SetCell(left+int(g.Width), i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left-1, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left-1, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(left+int(g.Width), top, '┐', defaultColor, bgColor)
	termbox.SetCell(left+int(g.Width), bottom, '┘', defaultColor, bgColor)

	fill(left, top, int(g.Width), 1, termbox.Cell{Ch: '─'})
	fill(left, bottom, int(g.Width), 1, termbox.Cell{Ch: '─'})
}

func renderTitle(left, top int, turn int64, length int) {
	tbprint(left, top-1, defaultColor, defaultColor, fmt.Sprintf("Snake - Turn %d - Length %d", turn, length))
}

func renderMessage(x, y int, msg string) error {
	tbprint(x, y, defaultColor, defaultColor, msg)
	return termbox.Flush()
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
