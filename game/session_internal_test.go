package game

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedSession(t *testing.T, cfg Config, kinds ...tetris.Kind) (*Session, *[]Event) {
	t.Helper()
	s, err := NewSession(cfg, WithRandomizer(tetris.NewFixedRandomizer(kinds...)))
	require.NoError(t, err)

	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })
	s.OnStart()
	events = events[:0]
	return s, &events
}

// fillRowsExceptOPiece fills the given rows everywhere except the two
// columns a freshly spawned O piece falls into.
func fillRowsExceptOPiece(grid *tetris.Grid, rows ...int) {
	for _, y := range rows {
		for x := range grid.Width() {
			if x != 4 && x != 5 {
				grid.Set(x, y, 7)
			}
		}
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	s, events := startedSession(t, DefaultConfig(), tetris.O)
	s.score = 120
	s.lines = 12
	// A block right under the spawned O: it lands in place and the next O
	// has nowhere to go.
	s.grid.Set(4, 2, 3)

	s.OnInput(SoftDrop)

	require.Len(t, *events, 4)
	assert.Equal(t, GameOver{FinalScore: 120}, (*events)[0])
	assert.Equal(t, ScoreChanged{Score: 0}, (*events)[1])
	assert.Equal(t, LevelChanged{Level: 1}, (*events)[2])
	state, ok := (*events)[3].(StateChanged)
	require.True(t, ok)
	assert.True(t, state.Grid.IsEmpty())
	assert.Nil(t, state.Piece)
	assert.Nil(t, s.Snapshot().Piece)

	assert.Equal(t, Over, s.State())
	assert.True(t, s.grid.IsEmpty())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Lines())
	assert.Equal(t, 1, s.Level())
}

func TestGameOverFreezesUntilRestart(t *testing.T) {
	s, events := startedSession(t, DefaultConfig(), tetris.O)
	s.grid.Set(4, 2, 3)
	s.OnInput(SoftDrop)
	require.Equal(t, Over, s.State())
	*events = (*events)[:0]

	before := s.Snapshot()
	s.OnTick(10 * time.Second)
	assert.False(t, s.OnInput(MoveLeft))
	assert.Empty(t, *events)
	assert.Equal(t, before.Piece, s.Snapshot().Piece)

	s.OnStart()
	assert.Equal(t, Running, s.State())
	assert.NotEmpty(t, *events)
}

func TestLandingClearsTwoRows(t *testing.T) {
	s, events := startedSession(t, DefaultConfig(), tetris.O)
	fillRowsExceptOPiece(s.grid, 18, 19)
	s.grid.Set(0, 17, 1)

	for range 19 {
		s.OnInput(SoftDrop)
	}

	assert.Equal(t, 30, s.Score())
	assert.Equal(t, 2, s.Lines())
	assert.Contains(t, *events, Event(LinesCleared{Count: 2, Points: 30}))
	assert.Contains(t, *events, Event(ScoreChanged{Score: 30}))

	// The partial row dropped to the bottom.
	assert.Equal(t, []tetris.Cell{1, 0, 0, 0, 0, 0, 0, 0, 0, 0}, s.grid.Row(19))
	assert.Equal(t, Running, s.State())
}

func TestLandingClearsTopRowsBeforeSpawnCheck(t *testing.T) {
	s, events := startedSession(t, DefaultConfig(), tetris.O)
	fillRowsExceptOPiece(s.grid, 0, 1)
	s.grid.Set(4, 2, 3)

	s.OnInput(SoftDrop)

	assert.Equal(t, Running, s.State())
	assert.Equal(t, 30, s.Score())
	assert.Equal(t, 2, s.Lines())
	assert.Contains(t, *events, Event(LinesCleared{Count: 2, Points: 30}))
	for _, ev := range *events {
		_, over := ev.(GameOver)
		assert.False(t, over, "game ended although the landing cleared the spawn rows")
	}
	assert.Equal(t, []tetris.Cell{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, s.grid.Row(0))
	assert.Equal(t, []tetris.Cell{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, s.grid.Row(1))
	assert.Equal(t, []tetris.Cell{0, 0, 0, 0, 3, 0, 0, 0, 0, 0}, s.grid.Row(2))
	require.NotNil(t, s.piece)
	assert.False(t, tetris.Collides(s.grid, s.piece))
}

func TestGameOverScoresTheFinalLanding(t *testing.T) {
	s, events := startedSession(t, DefaultConfig(), tetris.O)
	// Row 1 completes; the upper half of the O shifts into it and still
	// blocks the next spawn.
	fillRowsExceptOPiece(s.grid, 1)
	s.grid.Set(4, 2, 3)

	s.OnInput(SoftDrop)

	assert.Equal(t, Over, s.State())
	assert.Contains(t, *events, Event(LinesCleared{Count: 1, Points: 10}))
	assert.Contains(t, *events, Event(GameOver{FinalScore: 10}))
}

func delayedConfig() Config {
	cfg := DefaultConfig()
	cfg.ClearDelay = 100 * time.Millisecond
	return cfg
}

func TestDelayedClearFinalizesAfterDelay(t *testing.T) {
	s, events := startedSession(t, delayedConfig(), tetris.O)
	fillRowsExceptOPiece(s.grid, 18, 19)

	for range 19 {
		s.OnInput(SoftDrop)
	}

	snap := s.Snapshot()
	assert.Equal(t, []int{19, 18}, snap.PendingRows)
	assert.Zero(t, snap.Score)
	assert.True(t, snap.Grid.IsEmpty(), "marked rows are blanked while pending")

	s.OnTick(60 * time.Millisecond)
	assert.Zero(t, s.Score())

	s.OnTick(60 * time.Millisecond)
	assert.Equal(t, 30, s.Score())
	assert.Empty(t, s.Snapshot().PendingRows)
	assert.Contains(t, *events, Event(LinesCleared{Count: 2, Points: 30}))
}

func TestInputFinalizesPendingClearFirst(t *testing.T) {
	s, _ := startedSession(t, delayedConfig(), tetris.O)
	fillRowsExceptOPiece(s.grid, 19)
	s.grid.Set(9, 18, 2)

	for range 19 {
		s.OnInput(SoftDrop)
	}
	require.Equal(t, []int{19}, s.Snapshot().PendingRows)

	s.OnInput(MoveLeft)

	assert.Equal(t, 10, s.Score())
	assert.Empty(t, s.Snapshot().PendingRows)
	assert.Equal(t, []tetris.Cell{0, 0, 0, 0, 4, 4, 0, 0, 0, 2}, s.grid.Row(19))
}

func TestDelayedClearSettlesBeforeGameOverCheck(t *testing.T) {
	s, events := startedSession(t, delayedConfig(), tetris.O)
	fillRowsExceptOPiece(s.grid, 2)
	s.grid.Set(4, 3, 3)

	// The O lands across rows 1 and 2, completing row 2. Its upper half
	// blocks the next spawn until the marked row is removed.
	s.OnInput(SoftDrop)
	s.OnInput(SoftDrop)

	assert.Equal(t, Running, s.State())
	assert.Equal(t, 10, s.Score())
	assert.Empty(t, s.Snapshot().PendingRows)
	assert.Contains(t, *events, Event(LinesCleared{Count: 1, Points: 10}))
	assert.Equal(t, []tetris.Cell{0, 0, 0, 0, 4, 4, 0, 0, 0, 0}, s.grid.Row(2))
	assert.Equal(t, []tetris.Cell{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, s.grid.Row(1))
}

func TestRestartCancelsPendingClear(t *testing.T) {
	s, events := startedSession(t, delayedConfig(), tetris.O)
	fillRowsExceptOPiece(s.grid, 19)

	for range 19 {
		s.OnInput(SoftDrop)
	}
	require.False(t, s.pending.Empty())

	s.OnStart()
	s.OnTick(500 * time.Millisecond)

	assert.Zero(t, s.Score())
	assert.True(t, s.pending.Empty())
	for _, ev := range *events {
		_, cleared := ev.(LinesCleared)
		assert.False(t, cleared, "stale clear applied after restart")
	}
}

func TestDropIntervalUsesLevel(t *testing.T) {
	s, err := NewSession(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 950*time.Millisecond, s.dropInterval())
	s.level = 3
	assert.Equal(t, 850*time.Millisecond, s.dropInterval())
}

func TestOneStateEventPerFlush(t *testing.T) {
	s, events := startedSession(t, DefaultConfig(), tetris.O)
	fillRowsExceptOPiece(s.grid, 19)

	for range 19 {
		s.OnInput(SoftDrop)
	}

	states := 0
	for _, ev := range *events {
		if _, ok := ev.(StateChanged); ok {
			states++
		}
	}
	assert.Equal(t, 19, states)
}
