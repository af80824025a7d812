package main

import (
	"testing"

	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/prefs"
)

func TestResolvePreset(t *testing.T) {
	p := prefs.NewStore(nil)
	if err := p.SetDifficulty(config.DifficultyHard); err != nil {
		t.Fatalf("SetDifficulty: %v", err)
	}

	tests := []struct {
		name    string
		flag    string
		store   *prefs.Store
		want    config.DifficultyPreset
		wantErr bool
	}{
		{"prefs when no flag", "", p, config.DifficultyHard, false},
		{"flag wins", "easy", p, config.DifficultyEasy, false},
		{"no prefs", "", nil, "", false},
		{"unknown flag", "nightmare", p, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagDifficulty = tt.flag
			t.Cleanup(func() { flagDifficulty = "" })

			got, err := resolvePreset(tt.store)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("preset = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"not-an-address": "not-an-address",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}
