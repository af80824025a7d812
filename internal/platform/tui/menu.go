package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/prefs"
	"github.com/vovakirdan/scorch-runner/internal/registry"
	"github.com/vovakirdan/scorch-runner/internal/storage"
)

// difficultyCycle is the order the menu steps through presets.
// "" keeps whatever the config file says.
var difficultyCycle = []config.DifficultyPreset{
	"",
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// MenuModel is the Bubble Tea model for the character picker.
type MenuModel struct {
	characters     []registry.Character
	best           map[string]int
	cursor         int
	width          int
	height         int
	prefs          *prefs.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	status         string
	quitting       bool
	selected       *registry.Character // Set when user picks a character
	openScoreboard bool                // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The cursor starts on the
// remembered character. store may be nil.
func NewMenuModel(store *storage.Store, p *prefs.Store, cfg core.RuntimeConfig) MenuModel {
	if p == nil {
		p = prefs.NewStore(nil)
	}

	chars := registry.List()
	cursor := 0
	for i, c := range chars {
		if c.ID == p.Character() {
			cursor = i
		}
	}

	best := make(map[string]int, len(chars))
	if store != nil {
		for _, c := range chars {
			if hs, err := store.HighScore(c.ID); err == nil {
				best[c.ID] = hs
			}
		}
	}

	return MenuModel{
		characters: chars,
		best:       best,
		cursor:     cursor,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		prefs:      p,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.characters)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.characters) > 0 {
			selected := m.characters[m.cursor]
			if err := m.prefs.SetCharacter(selected.ID); err != nil {
				m.status = err.Error()
			}
			m.selected = &selected
			m.config.Character = selected.ID
			return m, tea.Quit // Exit menu to start the run
		}

	case MenuActionDifficulty:
		next := nextDifficulty(m.prefs.Difficulty())
		if err := m.prefs.SetDifficulty(next); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// nextDifficulty returns the preset after p in the menu cycle.
func nextDifficulty(p config.DifficultyPreset) config.DifficultyPreset {
	for i, d := range difficultyCycle {
		if d == p {
			return difficultyCycle[(i+1)%len(difficultyCycle)]
		}
	}
	return difficultyCycle[0]
}

// difficultyLabel names a preset for display.
func difficultyLabel(p config.DifficultyPreset) string {
	if p == "" {
		return "config default"
	}
	return string(p)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render("  S C O R C H   R U N N E R  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose your runner", m.width))
	b.WriteString("\n\n")

	for i, c := range m.characters {
		cursor := "  "
		nameStyle := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			nameStyle = nameStyle.Bold(true).Foreground(lipgloss.Color("229"))
		}
		glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Body)).Render(string(c.Glyph))

		line := cursor + glyph + " " + nameStyle.Render(c.Title)
		if hs := m.best[c.ID]; hs > 0 {
			line += mutedStyle.Render(fmt.Sprintf("  best %d", hs))
		}
		b.WriteString(centerStyled(line, m.width))
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(centerText(c.Tagline, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Difficulty: "+difficultyLabel(m.prefs.Difficulty()), m.width))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Run  |  D: Difficulty  |  Tab: Scores  |  Q: Quit"
	b.WriteString(mutedStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected character, or nil if none selected.
func (m MenuModel) Selected() *registry.Character {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// centerStyled centers text that may contain ANSI styling.
func centerStyled(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Character       string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, p *prefs.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, p, cfg)

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := prog.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config:     m.Config(),
		Difficulty: m.prefs.Difficulty(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.Character = m.Selected().ID
	} else {
		result.Quit = true
	}

	return result, nil
}
