package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/prefs"
	"github.com/vovakirdan/scorch-runner/internal/quiz"
	"github.com/vovakirdan/scorch-runner/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.scorch/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runner is the base simulation config; each session applies its
	// own difficulty preset on top.
	Runner config.RunnerConfig

	// Questions is the chance-card bank shared by all sessions.
	// Empty means the embedded bank.
	Questions []quiz.Question

	// TickRate is the frame rate requested for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		Runner:      config.DefaultRunnerConfig(),
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server for remote runs.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions sync.Map // session ID -> SessionModel
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "scorch-ssh",
	})

	if err := cfg.Runner.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Questions) == 0 {
		bank, err := quiz.LoadBank("", 1)
		if err != nil {
			return nil, err
		}
		cfg.Questions = bank.Questions()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".scorch", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.teardownMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(SessionOptions{
		Runner:    s.config.Runner,
		Runtime:   rt,
		Questions: s.config.Questions,
		Store:     s.store,
		Prefs:     prefs.NewStore(nil), // remote players get per-session prefs
		Player:    sshSession.User(),
		Logger:    s.logger.With("user", sshSession.User()),
	})

	s.sessions.Store(sshSession.Context().SessionID(), model)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// teardownMiddleware closes whatever run a session left behind once its
// program has stopped, e.g. when the client disconnects mid-run.
func (s *SSHServer) teardownMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		if v, ok := s.sessions.LoadAndDelete(sshSession.Context().SessionID()); ok {
			v.(SessionModel).Close()
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Runner    config.RunnerConfig
	Runtime   core.RuntimeConfig
	Questions []quiz.Question
	Store     *storage.Store
	Prefs     *prefs.Store
	Player    string
	Logger    *log.Logger
}

// SessionModel manages the full session flow: menu -> run -> menu, with
// the scoreboard reachable from the menu.
type SessionModel struct {
	opts       SessionOptions
	menu       MenuModel
	run        *RunModel
	scoreboard *ScoreboardModel
	active     *activeRun // shared by every copy of the model
	quitting   bool
}

// activeRun tracks the latest state of the run on screen so it can be
// closed after the program is gone.
type activeRun struct {
	run *RunModel
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewStore(nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts:   opts,
		menu:   NewMenuModel(opts.Store, opts.Prefs, opts.Runtime),
		active: &activeRun{},
	}
}

// Close leaves a run that is still open, recording it as unfinished.
// It must not be called while the program is still updating the model.
func (m SessionModel) Close() {
	run := m.active.run
	m.active.run = nil
	if run == nil || run.game.Closed() {
		return
	}
	run.leave()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch {
	case m.run != nil:
		return m.updateRun(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		run, err := m.newRun(selected.ID, m.opts.Prefs.Difficulty())
		if err != nil {
			m.opts.Logger.Error("cannot start run", "error", err)
			m.menu = NewMenuModel(m.opts.Store, m.opts.Prefs, m.opts.Runtime)
			return m, nil
		}
		m.run = &run
		m.active.run = m.run
		return m, m.run.Init()
	}

	return m, cmd
}

// newRun builds a run for the character with the difficulty applied.
func (m SessionModel) newRun(character string, preset config.DifficultyPreset) (RunModel, error) {
	cfg := m.opts.Runner
	config.ApplyRunnerPreset(&cfg, preset)

	rt := m.opts.Runtime
	rt.Character = character
	rt.Seed = time.Now().UnixNano()

	questions := m.opts.Questions
	if len(questions) == 0 {
		bank, err := quiz.LoadBank("", rt.Seed)
		if err != nil {
			return RunModel{}, err
		}
		questions = bank.Questions()
	}
	bank, err := quiz.NewBank(questions, rt.Seed)
	if err != nil {
		return RunModel{}, err
	}

	return NewRunModel(RunOptions{
		Config:    cfg,
		Runtime:   rt,
		Questions: bank,
		Store:     m.opts.Store,
		Player:    m.opts.Player,
		Logger:    m.opts.Logger,
	}), nil
}

// updateRun handles updates while a run is on screen.
func (m SessionModel) updateRun(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.run.Update(msg)
	if runModel, ok := newModel.(RunModel); ok {
		m.run = &runModel
		m.active.run = m.run
	}

	if m.run.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.run.BackToMenu() {
		m.run = nil
		m.active.run = nil
		m.menu = NewMenuModel(m.opts.Store, m.opts.Prefs, m.opts.Runtime)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates while the scoreboard is on screen.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.menu = NewMenuModel(m.opts.Store, m.opts.Prefs, m.opts.Runtime)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.run != nil:
		return m.run.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// InRun reports whether a run is on screen.
func (m SessionModel) InRun() bool {
	return m.run != nil
}

// InScoreboard reports whether the scoreboard is on screen.
func (m SessionModel) InScoreboard() bool {
	return m.scoreboard != nil
}
