package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded config cannot drive a run.
var ErrInvalidConfig = errors.New("config: invalid runner config")

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.scorch/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readRunner(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory.
	// Unreadable or invalid files fall through silently.
	for _, path := range []string{userConfigPath("runner.yaml"), filepath.Join("configs", "runner.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := readRunner(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readRunner parses a YAML file on top of the hardcoded defaults, so partial
// files only override the keys they name.
func readRunner(path string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scorch", "configs", filename)
}

// Validate checks the invariants the simulation relies on.
func (c RunnerConfig) Validate() error {
	switch {
	case len(c.Lanes.Offsets) != 3:
		return fmt.Errorf("%w: need exactly 3 lane offsets, got %d", ErrInvalidConfig, len(c.Lanes.Offsets))
	case c.Lanes.Start < 0 || c.Lanes.Start >= len(c.Lanes.Offsets):
		return fmt.Errorf("%w: start lane %d out of range", ErrInvalidConfig, c.Lanes.Start)
	case c.Pool.AheadZ >= c.Pool.BehindZ:
		return fmt.Errorf("%w: ahead_z must be less than behind_z", ErrInvalidConfig)
	case c.Pool.SeedGroups < 0:
		return fmt.Errorf("%w: seed_groups must not be negative", ErrInvalidConfig)
	case c.Pool.CardEvery <= 0:
		return fmt.Errorf("%w: card_every must be positive", ErrInvalidConfig)
	case c.Rules.MaxHealth <= 0:
		return fmt.Errorf("%w: max_health must be positive", ErrInvalidConfig)
	case c.Rules.MaxWrongAnswers <= 0:
		return fmt.Errorf("%w: max_wrong_answers must be positive", ErrInvalidConfig)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalidConfig)
	case c.Player.HitboxInset < 0 || c.Player.HitboxInset >= 0.5:
		return fmt.Errorf("%w: hitbox_inset must be in [0, 0.5)", ErrInvalidConfig)
	}
	return nil
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.BaseSpeed = 14
		cfg.Difficulty.MaxBonus = 16
		cfg.Rules.GraceSeconds = 3
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.BaseSpeed = 22
		cfg.Difficulty.ScorePerStep = 60
		cfg.Difficulty.MaxBonus = 30
	}
}
