package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/scorch-runner/internal/core"
)

// RunKeyMap defines the key bindings used during a run.
type RunKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Slide   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Exit    key.Binding
	Answer  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Slide, k.Pause, k.Exit}
}

// FullHelp returns key bindings for the full help view.
func (k RunKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Slide},
		{k.Pause, k.Restart, k.Answer},
		{k.Exit, k.Quit},
	}
}

// DefaultRunKeyMap returns default key bindings.
func DefaultRunKeyMap() RunKeyMap {
	return RunKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "lane left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "lane right"),
		),
		Jump: key.NewBinding(
			key.WithKeys("up", "w", " "),
			key.WithHelp("↑/w/space", "jump"),
		),
		Slide: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "slide"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Exit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave zone"),
		),
		Answer: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "answer"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to runner commands.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys RunKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultRunKeyMap()}
}

// Keys returns the bindings, for the help bar.
func (km *KeyMapper) Keys() RunKeyMap {
	return km.keys
}

// MapKey translates a key message to a command.
// Returns the command (may be CommandNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (cmd core.Command, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.CommandNone, true
	case key.Matches(msg, km.keys.Left):
		return core.CommandLaneLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.CommandLaneRight, false
	case key.Matches(msg, km.keys.Jump):
		return core.CommandJump, false
	case key.Matches(msg, km.keys.Slide):
		return core.CommandSlide, false
	case key.Matches(msg, km.keys.Pause):
		return core.CommandTogglePause, false
	case key.Matches(msg, km.keys.Restart):
		return core.CommandRestart, false
	case key.Matches(msg, km.keys.Exit):
		return core.CommandExit, false
	}
	return core.CommandNone, false
}

// MapKeyToFrame queues the command for a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	cmd, isQuit := km.MapKey(msg)
	frame.Push(cmd)
	return isQuit
}

// MapKeyToAnswer returns the zero-based choice for a quiz answer key.
func (km *KeyMapper) MapKeyToAnswer(msg tea.KeyMsg) (int, bool) {
	if !key.Matches(msg, km.keys.Answer) {
		return 0, false
	}
	s := msg.String()
	return int(s[0] - '1'), true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionDifficulty
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "d":
		return MenuActionDifficulty
	}

	return MenuActionNone
}
