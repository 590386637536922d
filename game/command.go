package game

import "fmt"

// Command is a player action.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	RotateClockwise
	RotateCounterClockwise
	// Start is not a move; Apply and Run treat it as a call to OnStart.
	Start
)

func (c Command) String() string {
	switch c {
	case MoveLeft:
		return "move left"
	case MoveRight:
		return "move right"
	case SoftDrop:
		return "soft drop"
	case RotateClockwise:
		return "rotate clockwise"
	case RotateCounterClockwise:
		return "rotate counter-clockwise"
	case Start:
		return "start"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}
