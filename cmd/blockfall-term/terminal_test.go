package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		r    rune
		want game.Command
	}{
		{tcell.KeyLeft, 0, game.MoveLeft},
		{tcell.KeyRight, 0, game.MoveRight},
		{tcell.KeyDown, 0, game.SoftDrop},
		{tcell.KeyUp, 0, game.RotateClockwise},
		{tcell.KeyEnter, 0, game.Start},
		{tcell.KeyRune, 'q', game.RotateCounterClockwise},
		{tcell.KeyRune, 'W', game.RotateClockwise},
		{tcell.KeyRune, ' ', game.Start},
	}
	for _, tc := range cases {
		cmd, ok, stop := translate(tcell.NewEventKey(tc.key, tc.r, tcell.ModNone))
		assert.True(t, ok, "%v", tc.want)
		assert.False(t, stop)
		assert.Equal(t, tc.want, cmd)
	}

	_, ok, stop := translate(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.False(t, ok)
	assert.True(t, stop)

	_, ok, stop = translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.False(t, ok)
	assert.False(t, stop)
}

func TestDrawRendersBoardFromEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(60, 30)

	session, err := game.NewSession(game.DefaultConfig(), game.WithRandomizer(tetris.NewFixedRandomizer(tetris.O)))
	require.NoError(t, err)

	term := newTerminal(screen, session)
	session.Subscribe(term.handle)
	session.OnStart()

	// O spawns at x=4, drawn two columns per cell.
	r, _, style, _ := screen.GetContent(originX+2*4, originY)
	assert.Equal(t, ' ', r)
	_, bg, _ := style.Decompose()
	assert.Equal(t, cellStyle(tetris.O.Value()), style)
	assert.NotEqual(t, tcell.ColorDefault, bg)

	r, _, _, _ = screen.GetContent(originX, originY)
	assert.Equal(t, '·', r)

	r, _, _, _ = screen.GetContent(originX+2*10+3, originY)
	assert.Equal(t, 'S', r, "sidebar starts with the score")
}
