package runner

import (
	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/quiz"
)

// MaxSubstep bounds a single integration step. Longer frames are split so a
// fast obstacle cannot skip over the player in one step.
const MaxSubstep = 1.0 / 30

// MaxFrameDelta caps the time a single Step may simulate. Longer gaps
// (a suspended terminal, a stalled SSH session) are truncated.
const MaxFrameDelta = 0.25

// QuestionProvider supplies chance-card questions.
type QuestionProvider interface {
	NextQuestion() quiz.Question
}

// Game is one zone of the runner. All methods must be called from the
// goroutine that owns it.
type Game struct {
	cfg       config.RunnerConfig
	questions QuestionProvider
	lanes     Lanes

	runtime    core.RuntimeConfig
	timers     *Timers
	clock      *Clock
	pool       *Pool
	player     *Player
	state      *StateMachine
	resolver   *Resolver
	difficulty *config.DifficultyManager

	question quiz.Question
	events   []Event
	ready    bool
	exited   bool
	closed   bool
}

// New creates a game. questions may be nil, in which case chance cards are
// never picked up. Call Reset before stepping.
func New(cfg config.RunnerConfig, questions QuestionProvider) *Game {
	return &Game{
		cfg:       cfg,
		questions: questions,
		lanes:     NewLanes(cfg.Lanes.Offsets),
	}
}

// Reset enters the zone: fresh pool from the runtime seed, player centered,
// full health, clock at zero.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if g.closed {
		return
	}
	if g.timers != nil {
		g.timers.CancelAll()
	}

	g.runtime = rt
	g.timers = NewTimers()
	g.clock = NewClock(g.cfg.Rules.GraceSeconds)
	g.pool = NewPool(g.cfg.Pool, g.lanes, rt.Seed)
	g.pool.Seed(g.cfg.Pool.SeedGroups)
	g.player = NewPlayer(g.cfg.Player, g.cfg.Physics, g.lanes, g.timers, g.cfg.Lanes.Start)
	g.state = NewStateMachine(g.cfg.Rules, g.cfg.Scoring)
	g.resolver = NewResolver(g.cfg.Scoring)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.question = quiz.Question{}
	g.events = g.events[:0]
	g.exited = false
	g.ready = true
}

// restart begins a new run in the same zone with a new layout.
func (g *Game) restart() {
	g.timers.CancelAll()
	g.clock.Reset()
	g.pool.Seed(g.cfg.Pool.SeedGroups)
	g.player.Reset(g.cfg.Lanes.Start)
	g.state.Restart()
	g.question = quiz.Question{}
	g.emit(Event{Kind: EventRestarted})
}

// Step applies the frame's commands in order, then advances the simulation
// by dt seconds if the run is still running.
func (g *Game) Step(in core.InputFrame, dt float64) StepResult {
	if !g.ready || g.closed || g.exited {
		return StepResult{State: g.State()}
	}
	g.events = g.events[:0]

	for _, c := range in.Commands {
		g.apply(c)
		if g.exited {
			return g.result()
		}
	}

	if g.state.Phase() == core.PhaseRunning && dt > 0 {
		remaining := min(dt, MaxFrameDelta)
		for remaining > 0 && g.state.Phase() == core.PhaseRunning {
			h := min(remaining, MaxSubstep)
			g.tick(h)
			remaining -= h
		}
	}

	return g.result()
}

func (g *Game) result() StepResult {
	res := StepResult{State: g.State()}
	if len(g.events) > 0 {
		res.Events = make([]Event, len(g.events))
		copy(res.Events, g.events)
	}
	return res
}

func (g *Game) apply(c core.Command) {
	if c == core.CommandExit {
		g.exited = true
		g.emit(Event{Kind: EventExited})
		return
	}

	switch g.state.Phase() {
	case core.PhaseQuizOpen:
		return
	case core.PhaseGameOver:
		if c == core.CommandRestart {
			g.restart()
		}
		return
	}

	if c == core.CommandTogglePause {
		g.state.TogglePause()
		return
	}
	if !c.IsMovement() {
		return
	}
	g.state.Resume()

	switch c {
	case core.CommandLaneLeft:
		g.player.SetLane(-1)
	case core.CommandLaneRight:
		g.player.SetLane(1)
	case core.CommandJump:
		g.player.Jump()
	case core.CommandSlide:
		g.player.Slide()
	}
}

// tick runs one integration step of the per-frame pipeline.
func (g *Game) tick(dt float64) {
	g.clock.Tick(dt)
	g.timers.Advance(dt)

	stats := g.state.Stats()
	g.pool.Advance(dt, g.difficulty.Speed(stats.Score))
	g.pool.EnsureMinimumCards(g.cfg.Pool.MinCards)

	if g.player.Update(dt) {
		g.emit(Event{Kind: EventLanded, Position: g.player.Position()})
	}

	out := g.resolver.Resolve(
		g.player.Bounds(),
		g.player.Position().Z,
		g.pool,
		stats,
		g.clock.InGrace(),
		g.questions != nil,
	)

	for _, id := range out.Passed {
		g.emit(Event{Kind: EventObstaclePassed, Entity: id})
	}
	if out.Fatal {
		g.gameOver(EndObstacle, out.HitBy)
		return
	}
	for _, it := range out.Collected {
		g.emit(Event{Kind: EventItemCollected, Entity: it.ID, Item: it.Kind, Position: it.Pos})
	}
	if g.state.CheckHealth() {
		g.emit(Event{Kind: EventGameOver, Reason: g.state.Reason()})
		return
	}
	if out.CardTaken {
		g.openQuiz(out.Card)
	}
}

func (g *Game) openQuiz(card EntityID) {
	q := g.questions.NextQuestion()
	if q.Validate() != nil {
		return
	}
	if g.state.OpenQuiz() {
		g.question = q
		g.emit(Event{Kind: EventQuizOpened, Entity: card})
	}
}

func (g *Game) gameOver(reason EndReason, id EntityID) {
	g.state.End(reason)
	g.emit(Event{Kind: EventGameOver, Entity: id, Reason: g.state.Reason()})
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// SubmitAnswer answers the open chance card with a zero-based choice.
// ok is false when no quiz is open or choice is not one of the options.
func (g *Game) SubmitAnswer(choice int) (correct, ok bool) {
	res, ok := g.Answer(choice)
	if !ok {
		return false, false
	}
	return res.Events[0].Correct, true
}

// Answer is SubmitAnswer returning the frame's outcome. The events start
// with EventAnswered, followed by EventGameOver when the answer ended the run.
func (g *Game) Answer(choice int) (StepResult, bool) {
	if !g.ready || g.closed || g.state.Phase() != core.PhaseQuizOpen {
		return StepResult{State: g.State()}, false
	}
	if choice < 0 || choice >= len(g.question.Choices) {
		return StepResult{State: g.State()}, false
	}
	g.events = g.events[:0]

	correct := g.question.IsCorrect(choice)
	g.state.Answer(correct)
	g.question = quiz.Question{}
	g.emit(Event{Kind: EventAnswered, Correct: correct})
	if g.state.Phase() == core.PhaseGameOver {
		g.emit(Event{Kind: EventGameOver, Reason: g.state.Reason()})
	}
	return g.result(), true
}

// Question returns the open chance-card question.
func (g *Game) Question() (quiz.Question, bool) {
	if !g.ready || g.state.Phase() != core.PhaseQuizOpen {
		return quiz.Question{}, false
	}
	return g.question, true
}

// State returns the HUD-level summary.
func (g *Game) State() core.GameState {
	if !g.ready {
		return core.GameState{Health: g.cfg.Rules.MaxHealth, Exited: g.exited || g.closed}
	}
	s := g.state.Stats()
	return core.GameState{
		Score:  s.Score,
		Health: s.Health,
		Phase:  g.state.Phase(),
		Exited: g.exited || g.closed,
	}
}

// EndReason returns why the run ended, EndNone while it is still going.
func (g *Game) EndReason() EndReason {
	if !g.ready {
		return EndNone
	}
	return g.state.Reason()
}

// WrongAnswers returns the cumulative wrong-answer count for this run.
func (g *Game) WrongAnswers() int {
	if !g.ready {
		return 0
	}
	return g.state.Stats().Wrong
}

// Elapsed returns seconds of running time in this run.
func (g *Game) Elapsed() float64 {
	if !g.ready {
		return 0
	}
	return g.clock.Elapsed()
}

// Character returns the cosmetic tag the zone was entered with.
func (g *Game) Character() string {
	return g.runtime.Character
}

// Snapshot returns a read-only view of the current frame.
func (g *Game) Snapshot() Snapshot {
	if !g.ready {
		return Snapshot{Character: g.runtime.Character}
	}

	stats := g.state.Stats()
	pos := g.player.Position()
	snap := Snapshot{
		Player: PlayerView{
			Position: pos,
			Lane:     g.player.Lane(),
			Airborne: g.player.Airborne(),
			Sliding:  g.player.Sliding(),
			Bob:      g.player.Bob(g.clock.Elapsed()),
			Smear:    g.player.Smear(),
		},
		Character: g.runtime.Character,
		Entities:  make([]EntityView, 0, g.pool.Len()),
		Health:    stats.Health,
		MaxHealth: g.cfg.Rules.MaxHealth,
		Score:     stats.Score,
		Wrong:     stats.Wrong,
		MaxWrong:  g.cfg.Rules.MaxWrongAnswers,
		Speed:     g.difficulty.Speed(stats.Score),
		Elapsed:   g.clock.Elapsed(),
		InGrace:   g.clock.InGrace(),
		LowHealth: g.state.LowHealth(),
		Phase:     g.state.Phase(),
		EndReason: g.state.Reason(),
	}

	for _, o := range g.pool.Obstacles {
		snap.Entities = append(snap.Entities, EntityView{ID: o.ID, Kind: o.Kind, Lane: o.Lane, Position: o.Pos, RotationY: o.RotationY, Bounds: o.Bounds()})
	}
	for _, it := range g.pool.Items {
		snap.Entities = append(snap.Entities, EntityView{ID: it.ID, Kind: it.Kind, Lane: it.Lane, Position: it.Pos, Bounds: it.Bounds()})
	}
	for _, c := range g.pool.Cards {
		snap.Entities = append(snap.Entities, EntityView{ID: c.ID, Kind: KindCard, Lane: c.Lane, Position: c.Pos, Bounds: c.Bounds()})
	}

	switch snap.Phase {
	case core.PhasePaused:
		snap.Overlay = OverlayPaused
	case core.PhaseQuizOpen:
		snap.Overlay = OverlayQuiz
		snap.Question = g.question
		snap.CorrectBonus = g.cfg.Scoring.CorrectAnswer
		snap.WrongPenalty = g.cfg.Scoring.WrongPenalty
	case core.PhaseGameOver:
		snap.Overlay = OverlayGameOver
	}
	return snap
}

// Close tears the zone down: every pending timer is cancelled exactly once
// and later calls on the game do nothing.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.timers != nil {
		g.timers.Close()
	}
}

// Closed reports whether Close has been called.
func (g *Game) Closed() bool {
	return g.closed
}

// Pool exposes the entity pool for inspection.
func (g *Game) Pool() *Pool {
	return g.pool
}

// Player exposes the player controller for inspection.
func (g *Game) Player() *Player {
	return g.player
}
