package runner

import (
	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/core"
)

// EndReason records why a run ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndObstacle
	EndQuiz
	EndHealth
)

// String returns the name stored with a finished run.
func (r EndReason) String() string {
	switch r {
	case EndObstacle:
		return "obstacle"
	case EndQuiz:
		return "quiz"
	case EndHealth:
		return "health"
	default:
		return ""
	}
}

// Stats holds the run's score, health and wrong-answer count.
type Stats struct {
	Score  int
	Health int
	Wrong  int

	maxHealth int
}

// NewStats creates full-health stats.
func NewStats(maxHealth int) Stats {
	return Stats{Health: maxHealth, maxHealth: maxHealth}
}

// AddScore adds n points. Score never decreases.
func (s *Stats) AddScore(n int) {
	if n > 0 {
		s.Score += n
	}
}

// Heal adds health up to the maximum.
func (s *Stats) Heal(n int) {
	s.Health = core.Clamp(s.Health+n, 0, s.maxHealth)
}

// Damage removes health down to zero.
func (s *Stats) Damage(n int) {
	s.Health = core.Clamp(s.Health-n, 0, s.maxHealth)
}

// StateMachine tracks the run phase and applies quiz answers.
type StateMachine struct {
	phase   core.Phase
	reason  EndReason
	stats   Stats
	rules   config.RulesConfig
	scoring config.ScoringConfig
}

// NewStateMachine creates a machine in the running phase with full health.
func NewStateMachine(rules config.RulesConfig, scoring config.ScoringConfig) *StateMachine {
	m := &StateMachine{rules: rules, scoring: scoring}
	m.Restart()
	return m
}

// Restart returns to running with fresh stats.
func (m *StateMachine) Restart() {
	m.phase = core.PhaseRunning
	m.reason = EndNone
	m.stats = NewStats(m.rules.MaxHealth)
}

// TogglePause flips between running and paused. Other phases are unaffected.
func (m *StateMachine) TogglePause() bool {
	switch m.phase {
	case core.PhaseRunning:
		m.phase = core.PhasePaused
	case core.PhasePaused:
		m.phase = core.PhaseRunning
	default:
		return false
	}
	return true
}

// Resume leaves pause. It returns false if the run was not paused.
func (m *StateMachine) Resume() bool {
	if m.phase != core.PhasePaused {
		return false
	}
	m.phase = core.PhaseRunning
	return true
}

// OpenQuiz interrupts a running run for a chance card.
func (m *StateMachine) OpenQuiz() bool {
	if m.phase != core.PhaseRunning {
		return false
	}
	m.phase = core.PhaseQuizOpen
	return true
}

// Answer closes the quiz. A correct answer scores; a wrong one costs health
// and counts toward the wrong-answer limit. Correct answers never reset the
// count. It returns false if no quiz was open.
func (m *StateMachine) Answer(correct bool) bool {
	if m.phase != core.PhaseQuizOpen {
		return false
	}
	if correct {
		m.stats.AddScore(m.scoring.CorrectAnswer)
		m.phase = core.PhaseRunning
		return true
	}

	m.stats.Damage(m.scoring.WrongPenalty)
	m.stats.Wrong++
	m.phase = core.PhaseRunning
	if m.stats.Wrong >= m.rules.MaxWrongAnswers {
		m.End(EndQuiz)
		return true
	}
	m.CheckHealth()
	return true
}

// CheckHealth ends the run when health reaches zero.
func (m *StateMachine) CheckHealth() bool {
	if m.stats.Health > 0 || m.phase == core.PhaseGameOver {
		return false
	}
	m.End(EndHealth)
	return true
}

// End moves to game over. The first reason recorded wins.
func (m *StateMachine) End(reason EndReason) {
	if m.phase == core.PhaseGameOver {
		return
	}
	m.phase = core.PhaseGameOver
	m.reason = reason
}

// Phase returns the current phase.
func (m *StateMachine) Phase() core.Phase { return m.phase }

// Reason returns why the run ended, EndNone while it is still going.
func (m *StateMachine) Reason() EndReason { return m.reason }

// Stats returns a pointer to the live stats.
func (m *StateMachine) Stats() *Stats { return &m.stats }

// LowHealth reports whether health is below the HUD warning threshold.
func (m *StateMachine) LowHealth() bool {
	return m.stats.Health < m.rules.LowHealth
}
