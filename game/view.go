package game

import "github.com/plus3/blockfall/tetris"

// View keeps the latest state a frontend needs to draw, built only from
// events. Pass View.Handle to Session.Subscribe.
type View struct {
	Grid  *tetris.Grid
	Piece *tetris.Piece
	Score int
	Level int

	LastClear  LinesCleared
	FinalScore int
	Games      int
}

// Handle applies one event.
func (v *View) Handle(ev Event) {
	switch ev := ev.(type) {
	case StateChanged:
		v.Grid = ev.Grid
		v.Piece = ev.Piece
	case ScoreChanged:
		v.Score = ev.Score
	case LevelChanged:
		v.Level = ev.Level
	case LinesCleared:
		v.LastClear = ev
	case GameOver:
		v.FinalScore = ev.FinalScore
		v.Games++
	}
}

// Board returns the grid with the active piece drawn in, or nil before the
// first StateChanged. Piece cells outside the grid are skipped.
func (v *View) Board() *tetris.Grid {
	if v.Grid == nil {
		return nil
	}
	board := v.Grid.Clone()
	if v.Piece != nil {
		v.Piece.Cells(func(x, y int, c tetris.Cell) {
			if board.Contains(x, y) {
				board.Set(x, y, c)
			}
		})
	}
	return board
}
