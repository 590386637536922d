package game

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetris"
)

// Event is something a frontend may want to react to. Events carry copies
// of session state; handlers may keep or modify them freely.
type Event interface {
	event()
}

// StateChanged is raised whenever the grid or the active piece changed.
// Piece is nil before the first start.
type StateChanged struct {
	Grid  *tetris.Grid
	Piece *tetris.Piece
}

// ScoreChanged carries the new score.
type ScoreChanged struct {
	Score int
}

// LevelChanged carries the new level.
type LevelChanged struct {
	Level int
}

// LinesCleared is raised when rows are removed from the grid.
type LinesCleared struct {
	Count  int
	Points int
}

// GameOver is raised when a new piece cannot be placed. FinalScore is the
// score before the reset that follows.
type GameOver struct {
	FinalScore int
}

func (StateChanged) event() {}
func (ScoreChanged) event() {}
func (LevelChanged) event() {}
func (LinesCleared) event() {}
func (GameOver) event() {}

type subscriptionId uint32

// bus delivers events to subscribers in subscription order.
type bus struct {
	nextId    subscriptionId
	order     []subscriptionId
	listeners *intmap.Map[subscriptionId, func(Event)]
}

func newBus() *bus {
	return &bus{
		listeners: intmap.New[subscriptionId, func(Event)](8),
	}
}

func (b *bus) subscribe(fn func(Event)) func() {
	b.nextId++
	id := b.nextId
	b.listeners.Put(id, fn)
	b.order = append(b.order, id)

	return func() {
		b.listeners.Del(id)
	}
}

func (b *bus) publish(ev Event) {
	for _, id := range b.order {
		if fn, ok := b.listeners.Get(id); ok {
			fn(ev)
		}
	}

	if len(b.order) != b.listeners.Len() {
		b.order = slices.DeleteFunc(b.order, func(id subscriptionId) bool {
			_, ok := b.listeners.Get(id)
			return !ok
		})
	}
}
