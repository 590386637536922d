package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/palette"
	"github.com/plus3/blockfall/tetris"
)

func drawBoard(screen *ebiten.Image, view *game.View, cellSize int) {
	screen.Fill(palette.Background)

	board := view.Board()
	if board == nil {
		return
	}

	size := float32(cellSize)
	vector.StrokeRect(screen, margin-2, margin-2,
		float32(board.Width())*size+4, float32(board.Height())*size+4,
		2, palette.Border, false)

	if ghost := ghostOf(view); ghost != nil {
		ghost.Cells(func(x, y int, v tetris.Cell) {
			vector.StrokeRect(screen,
				margin+float32(x)*size+1, margin+float32(y)*size+1, size-2, size-2,
				1, palette.Shade(v, 0.5), false)
		})
	}

	for y := range board.Height() {
		for x := range board.Width() {
			v, _ := board.At(x, y)
			if v == tetris.Empty {
				continue
			}
			px, py := margin+float32(x)*size, margin+float32(y)*size
			vector.DrawFilledRect(screen, px, py, size, size, palette.Shade(v, 0.3), false)
			vector.DrawFilledRect(screen, px+2, py+2, size-4, size-4, palette.Cell(v), false)
		}
	}
}

// ghostOf returns where the active piece would land, or nil.
func ghostOf(view *game.View) *tetris.Piece {
	if view.Piece == nil || view.Grid == nil {
		return nil
	}
	ghost := view.Piece.Clone()
	for tetris.Drop(ghost, view.Grid) {
	}
	if ghost.Pos == view.Piece.Pos {
		return nil
	}
	return ghost
}

func drawSidebar(screen *ebiten.Image, view *game.View, session *game.Session, cellSize int) {
	x := session.Config().Width*cellSize + 2*margin + 10

	text := fmt.Sprintf("SCORE %d\nLEVEL %d\nLINES %d", view.Score, view.Level, session.Lines())
	if view.LastClear.Count > 0 {
		text += fmt.Sprintf("\n\nlast clear: %d rows\n  +%d", view.LastClear.Count, view.LastClear.Points)
	}

	switch session.State() {
	case game.Over:
		text += fmt.Sprintf("\n\nGAME OVER\nfinal score %d\n\nENTER to play again", view.FinalScore)
	case game.NotStarted:
		text += "\n\nENTER to start"
	default:
		text += "\n\n<- -> move\nDOWN  drop\nQ/W   rotate\nESC   quit"
	}

	ebitenutil.DebugPrintAt(screen, text, x, margin)
}
