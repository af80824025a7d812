// Package tui provides the Bubble Tea integration for the runner.
// It handles the terminal UI loop, input mapping, scene drawing and the
// menu, scoreboard and SSH session flow around a run.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds between two ticks. The first tick and
// clock skew yield zero.
func frameDelta(last, now time.Time) float64 {
	if last.IsZero() || now.Before(last) {
		return 0
	}
	return now.Sub(last).Seconds()
}
