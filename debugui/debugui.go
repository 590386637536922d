// Package debugui draws Dear ImGui windows over a running game: a session
// inspector and per-system timing. Windows are queued by an Overlay system
// and drawn when the frame's commands flush.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/engine"
)

// Window renders one ImGui window.
type Window interface {
	Render()
}

// WindowFunc adapts a function to Window.
type WindowFunc func()

func (f WindowFunc) Render() { f() }

// InputState tracks whether ImGui wants the mouse or keyboard this frame.
// Game input should be skipped while ImGui captures the keyboard.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is a system that queues its windows every frame. It must run
// between the backend's BeginFrame and EndFrame.
type Overlay struct {
	windows []Window
	input   InputState
	visible bool
}

// NewOverlay creates a visible overlay with the given windows.
func NewOverlay(windows ...Window) *Overlay {
	return &Overlay{windows: windows, visible: true}
}

// Add appends a window.
func (o *Overlay) Add(w Window) {
	o.windows = append(o.windows, w)
}

// Toggle shows or hides every window.
func (o *Overlay) Toggle() {
	o.visible = !o.visible
}

// Visible reports whether windows are drawn.
func (o *Overlay) Visible() bool {
	return o.visible
}

// Input returns the capture state read on the last frame.
func (o *Overlay) Input() InputState {
	return o.input
}

// Execute reads ImGui's capture flags and defers every window's render.
func (o *Overlay) Execute(frame *engine.Frame) {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if !o.visible {
		return
	}
	for _, w := range o.windows {
		frame.Commands.Defer(w.Render)
	}
}
