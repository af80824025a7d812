package runner

import (
	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/quiz"
)

// Overlay is the modal layer the presentation draws over the lanes.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayPaused
	OverlayQuiz
	OverlayGameOver
)

// EventKind identifies a one-shot presentation signal.
type EventKind int

const (
	EventLanded EventKind = iota
	EventItemCollected
	EventObstaclePassed
	EventQuizOpened
	EventAnswered
	EventGameOver
	EventRestarted
	EventExited
)

// String returns a human-readable name for the event.
func (k EventKind) String() string {
	switch k {
	case EventLanded:
		return "landed"
	case EventItemCollected:
		return "item"
	case EventObstaclePassed:
		return "passed"
	case EventQuizOpened:
		return "quiz"
	case EventAnswered:
		return "answered"
	case EventGameOver:
		return "game-over"
	case EventRestarted:
		return "restarted"
	case EventExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Event is emitted once, on the frame it happens.
type Event struct {
	Kind     EventKind
	Entity   EntityID
	Item     EntityKind // for EventItemCollected
	Position core.Vec3
	Correct  bool      // for EventAnswered
	Reason   EndReason // for EventGameOver
}

// StepResult contains the outcome of a single frame.
type StepResult struct {
	State  core.GameState
	Events []Event
}

// PlayerView is the read-only player transform.
type PlayerView struct {
	Position core.Vec3
	Lane     int
	Airborne bool
	Sliding  bool
	Bob      float64 // cosmetic vertical offset
	Smear    float64 // seconds of stretch left
}

// EntityView is the read-only transform of a pooled entity.
type EntityView struct {
	ID        EntityID
	Kind      EntityKind
	Lane      int
	Position  core.Vec3
	RotationY float64
	Bounds    core.Box // collision volume, also used to size sprites
}

// Snapshot is everything the presentation needs to draw a frame.
type Snapshot struct {
	Player    PlayerView
	Character string
	Entities  []EntityView

	Health    int
	MaxHealth int
	Score     int
	Wrong     int
	MaxWrong  int // wrong answers that end the run
	Speed     float64
	Elapsed   float64
	InGrace   bool
	LowHealth bool

	Phase     core.Phase
	Overlay   Overlay
	Question  quiz.Question // set while Overlay is OverlayQuiz
	EndReason EndReason

	// Answer effects, set with Question.
	CorrectBonus int
	WrongPenalty int
}
