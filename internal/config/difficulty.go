package config

// DifficultyManager computes forward speed from the current score.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables the ramp.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether the ramp is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.ScorePerStep > 0 && d.cfg.MaxBonus > 0
}

// Bonus returns the whole-unit speed increment earned by score, capped at MaxBonus.
func (d *DifficultyManager) Bonus(score int) int {
	if !d.IsEnabled() || score <= 0 {
		return 0
	}
	return min(d.cfg.MaxBonus, score/d.cfg.ScorePerStep)
}

// Speed returns the forward speed in units per second for the given score.
// It never decreases as score grows and never exceeds BaseSpeed + MaxBonus.
func (d *DifficultyManager) Speed(score int) float64 {
	return d.cfg.BaseSpeed + float64(d.Bonus(score))
}

// MaxSpeed returns the ramp's upper bound.
func (d *DifficultyManager) MaxSpeed() float64 {
	if !d.IsEnabled() {
		return d.cfg.BaseSpeed
	}
	return d.cfg.BaseSpeed + float64(d.cfg.MaxBonus)
}
