// Package prefs remembers player preferences between runs, such as the
// selected character. Storage goes through gdata; when no data directory is
// available the store keeps preferences in memory only.
package prefs

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/registry"
)

// AppName is the gdata application name.
const AppName = "scorch_runner"

const (
	prefsObject   = "prefs"
	prefsProperty = "player"
)

// Prefs are the persisted preferences.
type Prefs struct {
	Character  string `yaml:"character"`
	Difficulty string `yaml:"difficulty,omitempty"`
}

// Defaults returns the preferences used before anything is saved.
func Defaults() Prefs {
	return Prefs{Character: registry.DefaultID}
}

// Store loads and saves Prefs.
type Store struct {
	manager *gdata.Manager // nil means memory only
	prefs   Prefs
}

// Open opens the gdata store for AppName. If gdata cannot be opened the
// returned store works in memory only and the error says why.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("prefs: cannot open data dir: %w", err)
	}
	s := NewStore(m)
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// NewStore creates a store over an opened manager. Call Load to read
// saved preferences.
func NewStore(m *gdata.Manager) *Store {
	return &Store{manager: m, prefs: Defaults()}
}

// Persistent reports whether preferences survive the process.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Load reads saved preferences. Missing data keeps the defaults.
func (s *Store) Load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("prefs: cannot load: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("prefs: cannot parse: %w", err)
	}
	if !registry.Exists(loaded.Character) {
		loaded.Character = registry.DefaultID
	}
	if config.ParsePreset(loaded.Difficulty) == "" {
		loaded.Difficulty = ""
	}
	s.prefs = loaded
	return nil
}

// Save writes the current preferences. Memory-only stores do nothing.
func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("prefs: cannot encode: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("prefs: cannot save: %w", err)
	}
	return nil
}

// Prefs returns a copy of the current preferences.
func (s *Store) Prefs() Prefs {
	return s.prefs
}

// Character returns the selected character tag.
func (s *Store) Character() string {
	return s.prefs.Character
}

// SetCharacter selects a registered character and saves it.
func (s *Store) SetCharacter(id string) error {
	if _, err := registry.Get(id); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	s.prefs.Character = id
	return s.Save()
}

// Difficulty returns the remembered difficulty preset, or "" for the config default.
func (s *Store) Difficulty() config.DifficultyPreset {
	return config.ParsePreset(s.prefs.Difficulty)
}

// SetDifficulty remembers a difficulty preset and saves it.
func (s *Store) SetDifficulty(p config.DifficultyPreset) error {
	if p != "" && config.ParsePreset(string(p)) == "" {
		return fmt.Errorf("prefs: unknown difficulty %q", p)
	}
	s.prefs.Difficulty = string(p)
	return s.Save()
}
