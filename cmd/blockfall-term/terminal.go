package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/palette"
	"github.com/plus3/blockfall/tetris"
)

const (
	originX = 2
	originY = 1
)

type terminal struct {
	screen  tcell.Screen
	session *game.Session
	view    *game.View
}

func newTerminal(screen tcell.Screen, session *game.Session) *terminal {
	return &terminal{screen: screen, session: session, view: &game.View{}}
}

// handle runs on the session's goroutine, after the session has settled.
func (t *terminal) handle(ev game.Event) {
	t.view.Handle(ev)
	t.draw()
}

// poll forwards key presses as commands until the screen closes or the
// player quits.
func (t *terminal) poll(ctx context.Context, quit context.CancelFunc, commands chan<- game.Command) {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			cmd, ok, stop := translate(ev)
			if stop {
				quit()
				return
			}
			if !ok {
				continue
			}
			select {
			case commands <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}
}

// translate maps a key to a command. stop is set for the quit keys.
func translate(ev *tcell.EventKey) (cmd game.Command, ok, stop bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, false, true
	case tcell.KeyLeft:
		return game.MoveLeft, true, false
	case tcell.KeyRight:
		return game.MoveRight, true, false
	case tcell.KeyDown:
		return game.SoftDrop, true, false
	case tcell.KeyUp:
		return game.RotateClockwise, true, false
	case tcell.KeyEnter:
		return game.Start, true, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return game.RotateCounterClockwise, true, false
		case 'w', 'W':
			return game.RotateClockwise, true, false
		case ' ':
			return game.Start, true, false
		}
	}
	return 0, false, false
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func cellStyle(v tetris.Cell) tcell.Style {
	if v == tetris.Empty {
		return tcell.StyleDefault.Foreground(rgb(palette.Border)).Background(rgb(palette.Background))
	}
	return tcell.StyleDefault.Foreground(rgb(palette.Shade(v, 0.3))).Background(rgb(palette.Cell(v)))
}

func (t *terminal) draw() {
	board := t.view.Board()
	if board == nil {
		return
	}

	t.screen.Clear()
	border := tcell.StyleDefault.Foreground(rgb(palette.Border))

	// Each cell is two columns wide so the board looks square.
	for y := range board.Height() {
		t.screen.SetContent(originX-1, originY+y, '│', nil, border)
		for x := range board.Width() {
			v, _ := board.At(x, y)
			style := cellStyle(v)
			glyph := ' '
			if v == tetris.Empty {
				glyph = '·'
			}
			t.screen.SetContent(originX+2*x, originY+y, glyph, nil, style)
			t.screen.SetContent(originX+2*x+1, originY+y, ' ', nil, style)
		}
		t.screen.SetContent(originX+2*board.Width(), originY+y, '│', nil, border)
	}
	for x := -1; x <= 2*board.Width(); x++ {
		t.screen.SetContent(originX+x, originY+board.Height(), '─', nil, border)
	}

	sideX := originX + 2*board.Width() + 3
	lines := []string{
		fmt.Sprintf("SCORE %d", t.view.Score),
		fmt.Sprintf("LEVEL %d", t.view.Level),
		fmt.Sprintf("LINES %d", t.session.Lines()),
		"",
	}
	switch t.session.State() {
	case game.Over:
		lines = append(lines, "GAME OVER", fmt.Sprintf("final score %d", t.view.FinalScore), "", "ENTER to play again")
	default:
		lines = append(lines, "←/→  move", "↓    drop", "q/w  rotate", "ESC  quit")
	}
	text := tcell.StyleDefault.Foreground(rgb(palette.Text))
	for i, line := range lines {
		t.drawText(sideX, originY+i, line, text)
	}

	t.screen.Show()
}

func (t *terminal) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
