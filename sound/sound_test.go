package sound

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plus3/blockfall/game"
)

// drain streams s to the end and returns how many samples it produced and
// the largest amplitude seen.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			peak = max(peak, frame[0], -frame[0])
		}
		total += n
		if !ok {
			break
		}
	}
	require.NoError(t, s.Err())
	return total, peak
}

func TestLinesClearedPlaysOneNotePerRow(t *testing.T) {
	for rows := 1; rows <= 4; rows++ {
		n, peak := drain(t, Effect(game.LinesCleared{Count: rows, Points: 10}))
		assert.Equal(t, rows*SampleRate.N(clearNote), n, "rows=%d", rows)
		assert.Positive(t, peak)
		assert.LessOrEqual(t, peak, 1.0)
	}
}

func TestGameOverPlaysDescendingPhrase(t *testing.T) {
	n, _ := drain(t, Effect(game.GameOver{FinalScore: 40}))
	assert.Equal(t, len(gameOverFreqs)*SampleRate.N(gameOverNote), n)
}

func TestOtherEventsAreSilent(t *testing.T) {
	assert.Nil(t, Effect(game.ScoreChanged{Score: 10}))
	assert.Nil(t, Effect(game.StateChanged{}))
	assert.Nil(t, Effect(game.LevelChanged{Level: 1}))
}

func TestPlayerHandle(t *testing.T) {
	var played []beep.Streamer
	closed := 0
	p := &Player{
		logger: zap.NewNop(),
		play:   func(s beep.Streamer) { played = append(played, s) },
		close:  func() { closed++ },
	}
	require.True(t, p.Enabled())

	p.Handle(game.ScoreChanged{Score: 10})
	p.Handle(game.LinesCleared{Count: 2, Points: 30})
	p.Handle(game.GameOver{})
	assert.Len(t, played, 2)

	p.Close()
	p.Close()
	assert.Equal(t, 1, closed)
	assert.False(t, p.Enabled())

	p.Handle(game.GameOver{})
	assert.Len(t, played, 2)
}
