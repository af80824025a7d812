// Package config provides YAML-based tuning for the runner and the
// score-driven difficulty ramp.
package config

// RunnerConfig contains every tunable of the lane runner.
type RunnerConfig struct {
	Lanes      LanesConfig      `yaml:"lanes"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Pool       PoolConfig       `yaml:"pool"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LanesConfig defines the lateral rails.
type LanesConfig struct {
	Offsets []float64 `yaml:"offsets"` // world X of each lane, left to right
	Start   int       `yaml:"start"`   // lane index at zone entry
}

// PhysicsConfig defines the runner's motion.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`        // units/s², positive pulls down
	JumpVelocity  float64 `yaml:"jump_velocity"`  // units/s at launch
	LaneLerpRate  float64 `yaml:"lane_lerp_rate"` // fraction per second toward the target lane
	GroundEpsilon float64 `yaml:"ground_epsilon"` // |Y| below this counts as grounded
}

// PlayerConfig defines the runner's logical volume and timed states.
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	SlideHeight   float64 `yaml:"slide_height"`
	Depth         float64 `yaml:"depth"`
	HitboxInset   float64 `yaml:"hitbox_inset"`   // fraction of each extent removed per side
	SlideDuration float64 `yaml:"slide_duration"` // seconds
	SmearDuration float64 `yaml:"smear_duration"` // seconds
	BobAmplitude  float64 `yaml:"bob_amplitude"`
	BobFrequency  float64 `yaml:"bob_frequency"`
}

// PoolConfig defines seeding and recycling of obstacles, items and cards.
type PoolConfig struct {
	SeedGroups    int     `yaml:"seed_groups"`
	SeedStartZ    float64 `yaml:"seed_start_z"`
	SpacingMin    float64 `yaml:"spacing_min"`
	SpacingJitter float64 `yaml:"spacing_jitter"`
	StaticChance  float64 `yaml:"static_chance"` // probability a group's obstacle is a cactus
	CardEvery     int     `yaml:"card_every"`
	CardPhase     int     `yaml:"card_phase"`
	CardOffset    float64 `yaml:"card_offset"`
	ItemChance    float64 `yaml:"item_chance"`
	ItemOffset    float64 `yaml:"item_offset"`
	MinCards      int     `yaml:"min_cards"`

	AheadZ  float64 `yaml:"ahead_z"`
	BehindZ float64 `yaml:"behind_z"`

	ObstacleRecycleOffset float64 `yaml:"obstacle_recycle_offset"`
	ObstacleRecycleJitter float64 `yaml:"obstacle_recycle_jitter"`
	ItemRecycleOffset     float64 `yaml:"item_recycle_offset"`
	ItemRecycleJitter     float64 `yaml:"item_recycle_jitter"`
	CardRecycleOffset     float64 `yaml:"card_recycle_offset"`
	CardRecycleJitter     float64 `yaml:"card_recycle_jitter"`
	ItemConsumeJitter     float64 `yaml:"item_consume_jitter"`

	WobbleAmplitude   float64 `yaml:"wobble_amplitude"`
	WobbleSpeedMin    float64 `yaml:"wobble_speed_min"`
	WobbleSpeedJitter float64 `yaml:"wobble_speed_jitter"`
	SpinMin           float64 `yaml:"spin_min"` // rad/s
	SpinJitter        float64 `yaml:"spin_jitter"`
}

// ScoringConfig defines score and health effects.
type ScoringConfig struct {
	PassBonus     int     `yaml:"pass_bonus"`
	PassMargin    float64 `yaml:"pass_margin"` // obstacle must be this far past the runner
	ItemScore     int     `yaml:"item_score"`
	ItemHeal      int     `yaml:"item_heal"`
	CorrectAnswer int     `yaml:"correct_answer"`
	WrongPenalty  int     `yaml:"wrong_penalty"`
}

// RulesConfig defines terminal conditions.
type RulesConfig struct {
	MaxHealth       int     `yaml:"max_health"`
	GraceSeconds    float64 `yaml:"grace_seconds"`
	MaxWrongAnswers int     `yaml:"max_wrong_answers"`
	LowHealth       int     `yaml:"low_health"` // HUD warning threshold
}

// DifficultyConfig defines the score-driven speed ramp:
// speed = base + min(max_bonus, floor(score / score_per_step)).
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	BaseSpeed    float64 `yaml:"base_speed"`
	ScorePerStep int     `yaml:"score_per_step"`
	MaxBonus     int     `yaml:"max_bonus"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	}
	return ""
}

// IsFixedPreset returns true if the preset disables the ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
