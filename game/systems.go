package game

import (
	"github.com/plus3/blockfall/engine"
)

// clearSystem removes rows marked by a delayed clear once their delay has
// run out.
type clearSystem struct {
	session *Session
}

func (c *clearSystem) Execute(frame *engine.Frame) {
	s := c.session
	if s.pending.Empty() {
		return
	}

	s.pendingLeft -= frame.DeltaTime
	if s.pendingLeft <= 0 {
		s.settle(frame.Commands)
	}
}

// gravitySystem accumulates frame time and drops the active piece each time
// the drop interval is exceeded.
type gravitySystem struct {
	session *Session
}

func (g *gravitySystem) Execute(frame *engine.Frame) {
	s := g.session
	if s.state != Running {
		return
	}

	s.dropCounter += frame.DeltaTime
	if s.dropCounter > s.dropInterval() {
		s.drop(frame.Commands)
	}
}
