package engine

import "time"

// Frame is handed to every system during one Scheduler.Once call.
type Frame struct {
	// DeltaTime is the time elapsed since the previous frame.
	DeltaTime time.Duration
	// Commands collects work that must wait until every system has run.
	Commands *Commands
}

func newFrame(dt time.Duration, commands *Commands) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  commands,
	}
}
