// Package sound turns session events into short synthesized tones.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/plus3/blockfall/game"
)

const SampleRate = beep.SampleRate(44100)

const (
	clearNote    = 60 * time.Millisecond
	gameOverNote = 150 * time.Millisecond
	baseFreq     = 880.0 // A5
)

var gameOverFreqs = []float64{440, 330, 220}

// Effect returns the sound for an event, or nil when the event is silent.
func Effect(ev game.Event) beep.Streamer {
	switch ev := ev.(type) {
	case game.LinesCleared:
		// One rising note per row, a major third apart.
		notes := make([]beep.Streamer, 0, ev.Count)
		for i := range ev.Count {
			notes = append(notes, tone(baseFreq*math.Pow(2, float64(4*i)/12), clearNote))
		}
		return quieter(beep.Seq(notes...))
	case game.GameOver:
		notes := make([]beep.Streamer, 0, len(gameOverFreqs))
		for _, f := range gameOverFreqs {
			notes = append(notes, tone(f, gameOverNote))
		}
		return quieter(beep.Seq(notes...))
	default:
		return nil
	}
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		// Only frequencies above the Nyquist limit fail.
		return beep.Silence(SampleRate.N(d))
	}
	return beep.Take(SampleRate.N(d), sine)
}

func quieter(s beep.Streamer) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: -2}
}

// Player plays the effect of every event it is handed. A player whose
// audio device failed to open stays silent.
type Player struct {
	logger *zap.Logger
	play   func(beep.Streamer)
	close  func()
}

// NewPlayer opens the speaker. Failure is logged and yields a silent
// player; the game runs fine without sound.
func NewPlayer(logger *zap.Logger) *Player {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return &Player{logger: logger}
	}
	return &Player{
		logger: logger,
		play:   func(s beep.Streamer) { speaker.Play(s) },
		close:  speaker.Close,
	}
}

// Enabled reports whether the speaker opened.
func (p *Player) Enabled() bool {
	return p.play != nil
}

// Handle plays the sound for ev. It has the signature Session.Subscribe
// expects.
func (p *Player) Handle(ev game.Event) {
	if p.play == nil {
		return
	}
	if s := Effect(ev); s != nil {
		p.play(s)
	}
}

// Close releases the speaker.
func (p *Player) Close() {
	if p.close != nil {
		p.close()
		p.close = nil
	}
	p.play = nil
}
