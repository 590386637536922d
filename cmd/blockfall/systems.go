package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/game"
)

const (
	repeatDelay = 170 * time.Millisecond
	repeatRate  = 50 * time.Millisecond
)

// keyRepeat turns a held key into a first press followed, after
// repeatDelay, by one press every repeatRate.
type keyRepeat struct {
	delay, rate time.Duration
	held        time.Duration
}

func newKeyRepeat() *keyRepeat {
	return &keyRepeat{delay: repeatDelay, rate: repeatRate}
}

// update reports how many presses the key produced this frame.
func (k *keyRepeat) update(justPressed, down bool, dt time.Duration) int {
	switch {
	case justPressed:
		k.held = 0
		return 1
	case !down:
		k.held = 0
		return 0
	}

	k.held += dt
	presses := 0
	for k.held > k.delay {
		k.held -= k.rate
		presses++
	}
	return presses
}

type inputSystem struct {
	session *game.Session
	overlay *debugui.Overlay

	left, right, down *keyRepeat
}

func (s *inputSystem) Execute(frame *engine.Frame) {
	if s.overlay != nil && s.overlay.Input().WantCaptureKeyboard {
		return
	}

	if s.session.State() != game.Running {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			s.session.Apply(game.Start)
		}
		return
	}

	s.repeat(s.left, ebiten.KeyArrowLeft, game.MoveLeft, frame.DeltaTime)
	s.repeat(s.right, ebiten.KeyArrowRight, game.MoveRight, frame.DeltaTime)
	s.repeat(s.down, ebiten.KeyArrowDown, game.SoftDrop, frame.DeltaTime)

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		s.session.Apply(game.RotateCounterClockwise)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.session.Apply(game.RotateClockwise)
	}
}

func (s *inputSystem) repeat(k *keyRepeat, key ebiten.Key, cmd game.Command, dt time.Duration) {
	for range k.update(inpututil.IsKeyJustPressed(key), ebiten.IsKeyPressed(key), dt) {
		s.session.Apply(cmd)
	}
}

type sessionTickSystem struct {
	session *game.Session
}

func (s *sessionTickSystem) Execute(frame *engine.Frame) {
	s.session.OnTick(frame.DeltaTime)
}
