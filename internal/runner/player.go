package runner

import (
	"math"

	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/core"
)

// verticalEpsilon is the |Y| above which the vertical integrator keeps
// running even with zero velocity.
const verticalEpsilon = 0.0001

// Player is the runner's controller: target lane, lateral easing, jump arc,
// slide and the smear stretch shown on quick moves.
type Player struct {
	cfg    config.PlayerConfig
	phys   config.PhysicsConfig
	lanes  Lanes
	timers *Timers

	lane     int
	pos      core.Vec3
	vy       float64
	airborne bool
	sliding  bool

	slideTimer TimerID
	smearTimer TimerID
}

// NewPlayer creates a player standing in startLane.
func NewPlayer(cfg config.PlayerConfig, phys config.PhysicsConfig, lanes Lanes, timers *Timers, startLane int) *Player {
	p := &Player{cfg: cfg, phys: phys, lanes: lanes, timers: timers}
	p.Reset(startLane)
	return p
}

// Reset recenters the player on a lane, grounded and upright.
func (p *Player) Reset(startLane int) {
	p.timers.Cancel(p.slideTimer)
	p.timers.Cancel(p.smearTimer)
	p.slideTimer, p.smearTimer = 0, 0

	p.lane = p.lanes.Clamp(startLane)
	p.pos = core.Vec3{X: p.lanes.X(p.lane)}
	p.vy = 0
	p.airborne = false
	p.sliding = false
}

// SetLane shifts the target lane by delta, clamped to the outer lanes.
// It returns false when the target did not change.
func (p *Player) SetLane(delta int) bool {
	target := p.lanes.Clamp(p.lane + delta)
	if target == p.lane {
		return false
	}
	p.lane = target
	p.armSmear()
	return true
}

// Jump launches the player if grounded. Jumping in the air does nothing.
func (p *Player) Jump() bool {
	if !p.Grounded() {
		return false
	}
	p.vy = p.phys.JumpVelocity
	p.armSmear()
	return true
}

// Slide lowers the player for SlideDuration seconds. A slide cannot be
// extended while one is in progress.
func (p *Player) Slide() bool {
	if p.sliding {
		return false
	}
	p.sliding = true
	p.slideTimer = p.timers.After(p.cfg.SlideDuration, func() {
		p.sliding = false
		p.slideTimer = 0
	})
	return true
}

// armSmear keeps at least SmearDuration of smear left.
func (p *Player) armSmear() {
	if rem, ok := p.timers.Remaining(p.smearTimer); ok && rem >= p.cfg.SmearDuration {
		return
	}
	p.timers.Cancel(p.smearTimer)
	p.smearTimer = p.timers.After(p.cfg.SmearDuration, func() {
		p.smearTimer = 0
	})
}

// Update eases toward the target lane and integrates the jump arc.
// It returns true on the frame the player touches down after being airborne.
func (p *Player) Update(dt float64) bool {
	t := math.Min(p.phys.LaneLerpRate*dt, 1)
	p.pos.X = core.Lerp(p.pos.X, p.lanes.X(p.lane), t)

	if p.vy == 0 && math.Abs(p.pos.Y) <= verticalEpsilon {
		return false
	}

	p.vy -= p.phys.Gravity * dt
	p.pos.Y += p.vy * dt
	if p.pos.Y > 0 {
		p.airborne = true
		return false
	}

	p.pos.Y = 0
	p.vy = 0
	landed := p.airborne
	p.airborne = false
	return landed
}

// Grounded reports whether the player can jump.
func (p *Player) Grounded() bool {
	return math.Abs(p.pos.Y) < p.phys.GroundEpsilon
}

// Bounds returns the collision box: the logical body standing at the
// player's position, inset by HitboxInset of each extent on every side.
func (p *Player) Bounds() core.Box {
	h := p.cfg.Height
	if p.sliding {
		h = p.cfg.SlideHeight
	}
	size := core.Vec3{X: p.cfg.Width, Y: h, Z: p.cfg.Depth}
	body := core.Box{
		Min: core.Vec3{X: p.pos.X - size.X/2, Y: p.pos.Y, Z: p.pos.Z - size.Z/2},
		Max: core.Vec3{X: p.pos.X + size.X/2, Y: p.pos.Y + size.Y, Z: p.pos.Z + size.Z/2},
	}
	return body.Expand(size.Scale(-p.cfg.HitboxInset))
}

// Bob returns the idle breathing offset at elapsed time t. It is cosmetic
// and never enters collision.
func (p *Player) Bob(t float64) float64 {
	if !p.Grounded() || p.sliding {
		return 0
	}
	return math.Sin(p.cfg.BobFrequency*t) * p.cfg.BobAmplitude
}

// Smear returns the remaining smear time, 0 when none.
func (p *Player) Smear() float64 {
	rem, _ := p.timers.Remaining(p.smearTimer)
	return rem
}

// Lane returns the target lane index.
func (p *Player) Lane() int { return p.lane }

// Position returns the player's logical position.
func (p *Player) Position() core.Vec3 { return p.pos }

// VelocityY returns the vertical velocity.
func (p *Player) VelocityY() float64 { return p.vy }

// Airborne reports whether the player is above the ground.
func (p *Player) Airborne() bool { return p.airborne }

// Sliding reports whether a slide is in progress.
func (p *Player) Sliding() bool { return p.sliding }
