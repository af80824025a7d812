package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/registry"
	"github.com/vovakirdan/scorch-runner/internal/runner"
	"github.com/vovakirdan/scorch-runner/internal/storage"
)

// Presentation timings, in seconds.
const (
	dustDuration  = 0.25
	toastDuration = 2.5
)

// RunOptions configures one zone session.
type RunOptions struct {
	Config    config.RunnerConfig
	Runtime   core.RuntimeConfig
	Questions runner.QuestionProvider // nil disables chance cards
	Store     *storage.Store          // nil disables run history
	Player    string                  // recorded with each run; "" means local
	Logger    *log.Logger             // nil discards
}

// RunModel is the Bubble Tea model that drives one runner zone.
type RunModel struct {
	game       *runner.Game
	screen     *core.Screen
	palette    Palette
	character  registry.Character
	store      *storage.Store
	logger     *log.Logger
	player     string
	runtime    core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	best       int
	dust       float64
	toast      string
	toastBad   bool
	toastLeft  float64
	maxWrong   int
	runSaved   bool // whether the current run has been recorded
	standalone bool // leaving the zone quits the program
	quitting   bool
	backToMenu bool
}

// NewRunModel creates a model for a zone. The game is entered on Init.
func NewRunModel(opts RunOptions) RunModel {
	rt := opts.Runtime
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	character := registry.Lookup(rt.Character)
	rt.Character = character.ID

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false
	h.Styles = help.Styles{} // drawn into the screen buffer, so no ANSI

	m := RunModel{
		game:       runner.New(opts.Config, opts.Questions),
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH),
		palette:    NewPalette(character),
		character:  character,
		store:      opts.Store,
		logger:     logger,
		player:     opts.Player,
		runtime:    rt,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		maxWrong:   opts.Config.Rules.MaxWrongAnswers,
	}
	m.best = m.loadBest()
	return m
}

// Init enters the zone and starts the frame loop.
func (m RunModel) Init() tea.Cmd {
	m.game.Reset(m.runtime)
	m.logger.Info("run started", "character", m.runtime.Character, "seed", m.runtime.Seed)
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.game.Closed() {
			return m, nil
		}
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m RunModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.gameState.Phase == core.PhaseQuizOpen {
		if choice, ok := m.keyMapper.MapKeyToAnswer(msg); ok {
			m.answer(choice)
			return m, nil
		}
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// answer submits a quiz choice and shows the result with the card's fact.
func (m *RunModel) answer(choice int) {
	q, _ := m.game.Question()
	result, ok := m.game.Answer(choice)
	if !ok {
		return
	}
	m.gameState = result.State
	m.handleEvents(result.Events, q.Fact)
	m.recordIfOver()
}

// answerToast is the message shown after a chance card is answered.
func answerToast(correct bool, wrong, maxWrong int, fact string) string {
	msg := "Correct!"
	if !correct {
		msg = fmt.Sprintf("Wrong (%d/%d).", wrong, maxWrong)
	}
	if fact != "" {
		msg += " " + fact
	}
	return msg
}

func (m *RunModel) showToast(text string, bad bool) {
	m.toast = text
	m.toastBad = bad
	m.toastLeft = toastDuration
}

// handleTick advances the simulation by the measured frame time.
func (m RunModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now)
	m.lastTick = now

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.dust = max(0, m.dust-dt)
	if m.toastLeft > 0 {
		m.toastLeft -= dt
		if m.toastLeft <= 0 {
			m.toast = ""
		}
	}

	m.handleEvents(result.Events, "")
	m.recordIfOver()

	if m.gameState.Exited {
		m.leave()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	// Continue ticking
	return m, tickCmd(m.runtime.TickRate)
}

// handleEvents reacts to one-shot simulation events. fact belongs to the
// card being answered, if any.
func (m *RunModel) handleEvents(events []runner.Event, fact string) {
	for _, e := range events {
		switch e.Kind {
		case runner.EventLanded:
			m.dust = dustDuration
		case runner.EventQuizOpened:
			m.logger.Info("quiz opened", "card", e.Entity)
		case runner.EventAnswered:
			m.logger.Info("quiz answered", "correct", e.Correct, "wrong", m.game.WrongAnswers())
			m.showToast(answerToast(e.Correct, m.game.WrongAnswers(), m.maxWrong, fact), !e.Correct)
		case runner.EventGameOver:
			m.logger.Info("game over", "reason", e.Reason, "score", m.gameState.Score)
		case runner.EventRestarted:
			m.runSaved = false
			m.best = m.loadBest()
			m.toast = ""
			m.logger.Info("run restarted", "character", m.runtime.Character)
		}
	}
}

// recordIfOver saves the run once when it has ended.
func (m *RunModel) recordIfOver() {
	if m.gameState.Phase == core.PhaseGameOver && !m.runSaved {
		m.saveRun()
	}
}

// leave records an unfinished run and tears the zone down.
func (m *RunModel) leave() {
	if !m.runSaved {
		m.saveRun()
	}
	m.game.Close()
	m.logger.Info("left zone", "score", m.gameState.Score)
}

// saveRun records the current run. Runs without points are not kept.
func (m *RunModel) saveRun() {
	m.runSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	rec := storage.RunRecord{
		Player:       m.player,
		Character:    m.runtime.Character,
		Score:        m.gameState.Score,
		WrongAnswers: m.game.WrongAnswers(),
		EndReason:    m.game.EndReason().String(),
		Duration:     int(m.game.Elapsed()),
	}
	if _, err := m.store.SaveRun(rec); err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.best = max(m.best, rec.Score)
}

func (m RunModel) loadBest() int {
	if m.store == nil {
		return 0
	}
	best, err := m.store.HighScore(m.runtime.Character)
	if err != nil {
		m.logger.Warn("could not load high score", "error", err)
		return 0
	}
	return best
}

// saveScreenshot saves the current screen to a file.
func (m *RunModel) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".scorch", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.runtime.Character, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.showToast("Screenshot saved", false)
}

// draw renders the current frame into the screen buffer.
func (m RunModel) draw() {
	DrawScene(m.screen, m.game.Snapshot(), SceneInfo{
		Character: m.character,
		Dust:      m.dust,
		Toast:     m.toast,
		ToastBad:  m.toastBad,
		Best:      m.best,
		Help:      m.help.View(m.keyMapper.Keys()),
	})
}

// View renders the current state to a string for display.
func (m RunModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen, m.palette)
}

// State returns the last observed run state.
func (m RunModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m RunModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player left the zone.
func (m RunModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one zone.
func Run(opts RunOptions) error {
	model := NewRunModel(opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
