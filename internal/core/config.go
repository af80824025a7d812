package core

// RuntimeConfig contains configuration passed to the runner at zone entry.
type RuntimeConfig struct {
	ScreenW   int    // Screen width in characters
	ScreenH   int    // Screen height in characters
	TickRate  int    // Frames requested per second (delta time is still measured)
	Seed      int64  // RNG seed for entity placement and question draws
	Character string // Cosmetic skin tag, forwarded untouched to the presentation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  60,
		Seed:      0, // 0 means use current time in platform layer
		Character: "solar-ranger",
	}
}

// Phase is the state of the run as seen by the platform.
type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseQuizOpen
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseQuizOpen:
		return "quiz-open"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// GameState is the HUD-level summary of a run.
type GameState struct {
	Score  int
	Health int
	Phase  Phase
	Exited bool // Player asked to leave the zone
}

// GameOver reports whether the run has ended.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Paused reports whether the run is paused by the player.
func (s GameState) Paused() bool {
	return s.Phase == PhasePaused
}
