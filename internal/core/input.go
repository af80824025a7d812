package core

// Command represents a discrete player intent, abstracted from physical keys
// and touch gestures. The simulation consumes commands, never raw input.
type Command int

const (
	CommandNone        Command = iota
	CommandLaneLeft            // Left arrow, A - move one lane left
	CommandLaneRight           // Right arrow, D - move one lane right
	CommandJump                // Space, Up, W - jump when grounded
	CommandSlide               // Down, S - slide under for a short time
	CommandTogglePause         // P - pause/unpause
	CommandExit                // Esc - leave the zone
	CommandRestart             // R - restart after game over
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandLaneLeft:
		return "LaneLeft"
	case CommandLaneRight:
		return "LaneRight"
	case CommandJump:
		return "Jump"
	case CommandSlide:
		return "Slide"
	case CommandTogglePause:
		return "TogglePause"
	case CommandExit:
		return "Exit"
	case CommandRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the command steers the runner.
// Movement commands resume a paused run before being applied.
func (c Command) IsMovement() bool {
	switch c {
	case CommandLaneLeft, CommandLaneRight, CommandJump, CommandSlide:
		return true
	}
	return false
}

// InputFrame holds the commands issued between two simulation frames,
// in the order they were received. Two lane presses in one frame move
// two lanes, so order and multiplicity are preserved.
type InputFrame struct {
	Commands []Command
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Commands: make([]Command, 0, 4)}
}

// Push appends a command to the frame. CommandNone is dropped.
func (f *InputFrame) Push(c Command) {
	if c == CommandNone {
		return
	}
	f.Commands = append(f.Commands, c)
}

// Has returns true if the given command was issued this frame.
func (f InputFrame) Has(c Command) bool {
	for _, got := range f.Commands {
		if got == c {
			return true
		}
	}
	return false
}

// Len returns the number of queued commands.
func (f InputFrame) Len() int {
	return len(f.Commands)
}

// Clear resets the frame for reuse, keeping its capacity.
func (f *InputFrame) Clear() {
	f.Commands = f.Commands[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Commands: make([]Command, len(f.Commands))}
	copy(clone.Commands, f.Commands)
	return clone
}
