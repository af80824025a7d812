package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/scorch-runner/internal/registry"
	"github.com/vovakirdan/scorch-runner/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the character sidebar
	sidebarWidth       = 20  // Width of character sidebar
	maxRuns            = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Back    key.Binding
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev runner"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next runner"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next runner"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev runner"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboardTab is one filter of the scoreboard. An empty ID shows every runner.
type scoreboardTab struct {
	ID    string
	Title string
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	tabs        []scoreboardTab
	tabCursor   int
	store       *storage.Store
	runs        []storage.RunRecord
	stats       *storage.RunStats
	table       table.Model
	columns     int
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show the character sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	tabs := []scoreboardTab{{Title: "All runners"}}
	for _, c := range registry.List() {
		tabs = append(tabs, scoreboardTab{ID: c.ID, Title: c.Title})
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		tabs:        tabs,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Runner", Width: 14},
		{Title: "Ended by", Width: 9},
		{Title: "Wrong", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if tableWidth < 70 {
		// Drop the player-facing extras on narrow terminals.
		columns = columns[:4]
	}
	m.columns = len(columns)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the best runs and stats for the current tab.
func (m *ScoreboardModel) loadRuns() {
	m.runs = nil
	m.stats = nil
	if m.store != nil {
		id := m.tabs[m.tabCursor].ID
		if runs, err := m.store.TopRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if id != "" {
			if st, err := m.store.CharacterStats(id); err == nil {
				m.stats = st
			}
		}
	}
	m.updateTableRows()
}

// endedBy returns the display label for a stored end reason.
func endedBy(reason string) string {
	if reason == "" {
		return "left"
	}
	return reason
}

// updateTableRows updates the table with current runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			registry.Lookup(r.Character).Title,
			endedBy(r.EndReason),
			fmt.Sprintf("%d", r.WrongAnswers),
			fmt.Sprintf("%ds", r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		rows[i] = row[:m.columns]
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Right):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.Left):
			m.tabCursor--
			if m.tabCursor < 0 {
				m.tabCursor = len(m.tabs) - 1
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")).
		MarginBottom(1)

	title := fmt.Sprintf("RUN HISTORY - %s", m.tabs[m.tabCursor].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if line := m.statsLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(centerText(line, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected runner's history.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs · best %d · avg %.0f · longest %ds · obstacles %d · quiz %d · health %d",
		st.Runs, st.HighScore, st.AvgScore, st.LongestRun,
		st.EndReasons["obstacle"], st.EndReasons["quiz"], st.EndReasons["health"])
}

// renderWideLayout renders the scoreboard with a sidebar for runner selection.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Runners\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, t := range m.tabs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.tabCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := t.Title
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the scoreboard with runner tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	plain := 0
	for i, t := range m.tabs {
		shortName := t.Title
		if len(shortName) > 12 {
			shortName = shortName[:11] + "."
		}
		plain += len(shortName) + 3
		if i == m.tabCursor {
			tabs[i] = activeTabStyle.Render(shortName)
		} else {
			tabs[i] = tabStyle.Render(" " + shortName + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if plain > m.width-4 {
		// Just show the current tab with arrows
		tabLine = fmt.Sprintf("< %s >", m.tabs[m.tabCursor].Title)
	}
	b.WriteString(centerStyled(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nEnter the zone to set a score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
