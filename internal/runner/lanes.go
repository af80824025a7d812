// Package runner implements the lane runner simulation: the recycled entity
// pool, the player controller, collision and scoring, and the run state machine.
// It has no terminal or Bubble Tea dependencies; the platform feeds it commands
// and measured frame time and draws its snapshots.
package runner

import "github.com/vovakirdan/scorch-runner/internal/core"

// Lanes maps lane indices to lateral world positions.
type Lanes struct {
	offsets []float64
}

// NewLanes creates a lane set from left-to-right X offsets.
func NewLanes(offsets []float64) Lanes {
	o := make([]float64, len(offsets))
	copy(o, offsets)
	return Lanes{offsets: o}
}

// Count returns the number of lanes.
func (l Lanes) Count() int {
	return len(l.offsets)
}

// Clamp restricts a lane index to the valid range.
func (l Lanes) Clamp(i int) int {
	return core.Clamp(i, 0, len(l.offsets)-1)
}

// X returns the world X of a lane. Out-of-range indices are clamped.
func (l Lanes) X(i int) float64 {
	return l.offsets[l.Clamp(i)]
}
