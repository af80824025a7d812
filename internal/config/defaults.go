package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Lanes: LanesConfig{
			Offsets: []float64{-6, 0, 6},
			Start:   1,
		},
		Physics: PhysicsConfig{
			Gravity:       20,
			JumpVelocity:  14,
			LaneLerpRate:  10,
			GroundEpsilon: 0.001,
		},
		Player: PlayerConfig{
			Width:         0.8,
			Height:        1.8,
			SlideHeight:   0.6,
			Depth:         0.8,
			HitboxInset:   0.2,
			SlideDuration: 0.6,
			SmearDuration: 0.18,
			BobAmplitude:  0.02,
			BobFrequency:  2,
		},
		Pool: PoolConfig{
			SeedGroups:    22,
			SeedStartZ:    -70,
			SpacingMin:    16,
			SpacingJitter: 5,
			StaticChance:  0.6,
			CardEvery:     3,
			CardPhase:     1,
			CardOffset:    8,
			ItemChance:    0.5,
			ItemOffset:    14,
			MinCards:      3,

			AheadZ:  -120,
			BehindZ: 14,

			ObstacleRecycleOffset: 30,
			ObstacleRecycleJitter: 20,
			ItemRecycleOffset:     60,
			ItemRecycleJitter:     30,
			CardRecycleOffset:     50,
			CardRecycleJitter:     30,
			ItemConsumeJitter:     60,

			WobbleAmplitude:   0.2,
			WobbleSpeedMin:    0.8,
			WobbleSpeedJitter: 0.5,
			SpinMin:           7.2, // 0.12 rad per frame at 60 fps
			SpinJitter:        4.8,
		},
		Scoring: ScoringConfig{
			PassBonus:     5,
			PassMargin:    1,
			ItemScore:     8,
			ItemHeal:      6,
			CorrectAnswer: 10,
			WrongPenalty:  15,
		},
		Rules: RulesConfig{
			MaxHealth:       100,
			GraceSeconds:    2,
			MaxWrongAnswers: 3,
			LowHealth:       30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			BaseSpeed:    18,
			ScorePerStep: 80,
			MaxBonus:     24,
		},
	}
}

// GetDefaultYAML returns the embedded default runner YAML.
func GetDefaultYAML() []byte {
	return defaultRunnerYAML
}
