package runner

// Clock accumulates simulation time for the current run.
type Clock struct {
	elapsed float64
	grace   float64
}

// NewClock creates a clock with the given start-of-run grace window in seconds.
func NewClock(grace float64) *Clock {
	return &Clock{grace: grace}
}

// Tick adds dt seconds. Negative deltas are ignored.
func (c *Clock) Tick(dt float64) {
	if dt > 0 {
		c.elapsed += dt
	}
}

// Elapsed returns seconds of running time since the run started.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// InGrace reports whether the run is still inside its grace window,
// during which obstacles and cards cannot be hit.
func (c *Clock) InGrace() bool {
	return c.elapsed < c.grace
}

// Reset zeroes the clock.
func (c *Clock) Reset() {
	c.elapsed = 0
}
