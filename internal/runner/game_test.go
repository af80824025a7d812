package runner

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/quiz"
)

type fixedQuestions struct {
	q     quiz.Question
	calls int
}

func (f *fixedQuestions) NextQuestion() quiz.Question {
	f.calls++
	return f.q
}

func newFixedQuestions() *fixedQuestions {
	return &fixedQuestions{q: quiz.Question{
		Prompt:       "Which is renewable?",
		Choices:      []string{"Coal", "Solar", "Diesel"},
		CorrectIndex: 1,
		Fact:         "Sunlight is free.",
	}}
}

func newTestGame(qp QuestionProvider) *Game {
	g := New(config.DefaultRunnerConfig(), qp)
	g.Reset(core.RuntimeConfig{Seed: 1, Character: "ice-sentinel"})
	return g
}

// clearWorld empties the pool and skips the grace window.
func clearWorld(g *Game) {
	g.pool.Obstacles = g.pool.Obstacles[:0]
	g.pool.Items = g.pool.Items[:0]
	g.pool.Cards = g.pool.Cards[:0]
	g.clock.Tick(3)
}

func input(cmds ...core.Command) core.InputFrame {
	f := core.NewInputFrame()
	for _, c := range cmds {
		f.Push(c)
	}
	return f
}

func hasEvent(res StepResult, kind EventKind) bool {
	for _, e := range res.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestResetInitialState(t *testing.T) {
	g := newTestGame(nil)
	st := g.State()
	if st.Health != 100 || st.Score != 0 || st.Phase != core.PhaseRunning {
		t.Errorf("initial state = %+v", st)
	}
	if g.Player().Lane() != 1 {
		t.Errorf("lane = %d, want 1", g.Player().Lane())
	}
	snap := g.Snapshot()
	if snap.Character != "ice-sentinel" {
		t.Errorf("character = %q", snap.Character)
	}
	if len(snap.Entities) != g.Pool().Len() {
		t.Errorf("snapshot has %d entities, pool has %d", len(snap.Entities), g.Pool().Len())
	}
	if snap.Speed != 18 || !snap.InGrace || snap.Overlay != OverlayNone {
		t.Errorf("snapshot = speed %v grace %v overlay %v", snap.Speed, snap.InGrace, snap.Overlay)
	}
}

func TestCommandsBeforeResetAreIgnored(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), nil)
	res := g.Step(input(core.CommandJump, core.CommandLaneLeft), frame)
	if len(res.Events) != 0 || res.State.Score != 0 {
		t.Errorf("step before reset = %+v", res)
	}
	if _, ok := g.SubmitAnswer(0); ok {
		t.Error("answer before reset should be ignored")
	}
	if len(g.Snapshot().Entities) != 0 {
		t.Error("snapshot before reset should be empty")
	}
}

func TestTwoLanePressesInOneFrame(t *testing.T) {
	g := newTestGame(nil)
	g.Step(input(core.CommandLaneRight, core.CommandLaneLeft, core.CommandLaneLeft), frame)
	if g.Player().Lane() != 0 {
		t.Errorf("lane = %d, want 0", g.Player().Lane())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(nil)
	g.Step(input(), frame)
	z := g.Pool().Obstacles[0].Pos.Z
	elapsed := g.Elapsed()

	res := g.Step(input(core.CommandTogglePause), frame)
	if res.State.Phase != core.PhasePaused {
		t.Fatalf("phase = %v, want paused", res.State.Phase)
	}
	for range 10 {
		g.Step(input(), frame)
	}
	if g.Pool().Obstacles[0].Pos.Z != z || g.Elapsed() != elapsed {
		t.Error("world moved while paused")
	}
	if g.Snapshot().Overlay != OverlayPaused {
		t.Error("paused overlay expected")
	}

	g.Step(input(core.CommandTogglePause), frame)
	if g.State().Phase != core.PhaseRunning {
		t.Error("second toggle should resume")
	}
}

func TestMovementWhilePausedResumes(t *testing.T) {
	g := newTestGame(nil)
	g.Step(input(core.CommandTogglePause), frame)

	res := g.Step(input(core.CommandLaneRight), frame)
	if res.State.Phase != core.PhaseRunning {
		t.Fatalf("phase = %v, movement should resume", res.State.Phase)
	}
	if g.Player().Lane() != 2 {
		t.Errorf("lane = %d, the move should also apply", g.Player().Lane())
	}
}

func TestGraceThenObstacleEndsRun(t *testing.T) {
	g := newTestGame(nil)
	g.pool.Obstacles = g.pool.Obstacles[:1]
	g.pool.Obstacles[0] = Obstacle{ID: 1, Kind: KindCactus, Lane: 1, Pos: core.Vec3{Z: -0.2}}
	g.pool.Items = g.pool.Items[:0]
	g.pool.Cards = g.pool.Cards[:0]

	res := g.Step(input(), frame)
	if res.State.Phase != core.PhaseRunning {
		t.Fatal("obstacle contact during grace must not end the run")
	}

	g.pool.Obstacles[0].Pos.Z = -0.2
	g.clock.Tick(3)
	res = g.Step(input(), frame)
	if res.State.Phase != core.PhaseGameOver {
		t.Fatalf("phase = %v, want game over", res.State.Phase)
	}
	if g.EndReason() != EndObstacle || !hasEvent(res, EventGameOver) {
		t.Errorf("reason=%v events=%v", g.EndReason(), res.Events)
	}
	if g.Snapshot().Overlay != OverlayGameOver {
		t.Error("game over overlay expected")
	}
}

func TestGameOverHonoursOnlyRestartAndExit(t *testing.T) {
	g := newTestGame(nil)
	g.state.End(EndObstacle)
	lane := g.Player().Lane()

	g.Step(input(core.CommandLaneLeft, core.CommandJump, core.CommandTogglePause), frame)
	if g.Player().Lane() != lane || g.State().Phase != core.PhaseGameOver {
		t.Fatal("commands other than restart must be ignored after game over")
	}

	g.state.Stats().Score = 40
	first := g.Pool().Obstacles[0]
	res := g.Step(input(core.CommandRestart), frame)
	if !hasEvent(res, EventRestarted) {
		t.Fatal("expected restart event")
	}
	st := g.State()
	if st.Phase != core.PhaseRunning || st.Score != 0 || st.Health != 100 {
		t.Errorf("state after restart = %+v", st)
	}
	if g.WrongAnswers() != 0 || g.Player().Lane() != 1 {
		t.Error("restart should reset wrong answers and recenter the player")
	}
	if g.Pool().Obstacles[0] == first {
		t.Error("restart should reseed the pool")
	}
	if g.Elapsed() > 2*frame {
		t.Errorf("clock not reset: %v", g.Elapsed())
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	g := newTestGame(nil)
	g.state.Stats().Score = 30
	res := g.Step(input(core.CommandRestart), frame)
	if hasEvent(res, EventRestarted) || g.State().Score < 30 {
		t.Error("restart should only apply after game over")
	}
}

func openQuiz(t *testing.T, g *Game) {
	t.Helper()
	clearWorld(g)
	g.pool.Cards = append(g.pool.Cards, Card{ID: 99, Lane: 1, Pos: core.Vec3{Z: -0.2}})
	res := g.Step(input(), frame)
	if !hasEvent(res, EventQuizOpened) || res.State.Phase != core.PhaseQuizOpen {
		t.Fatalf("quiz did not open: %+v", res)
	}
}

func TestCardOpensQuiz(t *testing.T) {
	qp := newFixedQuestions()
	g := newTestGame(qp)
	openQuiz(t, g)

	if qp.calls != 1 {
		t.Errorf("questions drawn = %d, want exactly 1", qp.calls)
	}
	q, ok := g.Question()
	if !ok || q.Prompt != qp.q.Prompt {
		t.Errorf("Question() = %+v, %v", q, ok)
	}
	snap := g.Snapshot()
	if snap.Overlay != OverlayQuiz || snap.Question.Prompt != qp.q.Prompt {
		t.Errorf("snapshot overlay=%v question=%q", snap.Overlay, snap.Question.Prompt)
	}
}

func TestQuizFreezesAndIgnoresCommands(t *testing.T) {
	g := newTestGame(newFixedQuestions())
	openQuiz(t, g)
	elapsed := g.Elapsed()
	lane := g.Player().Lane()

	g.Step(input(core.CommandLaneLeft, core.CommandJump, core.CommandSlide, core.CommandTogglePause, core.CommandRestart), frame)
	if g.Player().Lane() != lane || g.Player().Sliding() || g.Player().VelocityY() != 0 {
		t.Error("movement must be ignored while the quiz is open")
	}
	if g.State().Phase != core.PhaseQuizOpen {
		t.Errorf("phase = %v, want quiz-open", g.State().Phase)
	}
	if g.Elapsed() != elapsed {
		t.Error("clock advanced while the quiz was open")
	}

	res := g.Step(input(core.CommandExit), frame)
	if !res.State.Exited || !hasEvent(res, EventExited) {
		t.Error("exit should be honoured while the quiz is open")
	}
}

func TestSubmitAnswer(t *testing.T) {
	g := newTestGame(newFixedQuestions())
	openQuiz(t, g)
	score := g.State().Score

	if _, ok := g.SubmitAnswer(7); ok {
		t.Fatal("out-of-range choice should be rejected")
	}
	correct, ok := g.SubmitAnswer(1)
	if !ok || !correct {
		t.Fatalf("SubmitAnswer(1) = %v, %v", correct, ok)
	}
	if g.State().Score != score+10 || g.State().Phase != core.PhaseRunning {
		t.Errorf("after correct answer: %+v", g.State())
	}
	if _, ok := g.SubmitAnswer(1); ok {
		t.Error("second answer should be ignored")
	}

	openQuiz(t, g)
	correct, _ = g.SubmitAnswer(0)
	if correct {
		t.Error("choice 0 is wrong")
	}
	if g.State().Health != 85 || g.WrongAnswers() != 1 {
		t.Errorf("after wrong answer health=%d wrong=%d", g.State().Health, g.WrongAnswers())
	}
}

func TestAnswerEmitsEvents(t *testing.T) {
	g := newTestGame(newFixedQuestions())
	openQuiz(t, g)

	res, ok := g.Answer(1)
	if !ok {
		t.Fatal("answer rejected")
	}
	if len(res.Events) != 1 || res.Events[0].Kind != EventAnswered || !res.Events[0].Correct {
		t.Fatalf("events = %+v, want one correct EventAnswered", res.Events)
	}
	if res.State.Phase != core.PhaseRunning {
		t.Errorf("phase = %v, want running", res.State.Phase)
	}

	for i := range 3 {
		openQuiz(t, g)
		res, _ = g.Answer(0)
		if i < 2 && hasEvent(res, EventGameOver) {
			t.Fatalf("answer %d ended the run early", i+1)
		}
	}
	if len(res.Events) != 2 || res.Events[0].Kind != EventAnswered || res.Events[0].Correct {
		t.Fatalf("events = %+v, want wrong EventAnswered then EventGameOver", res.Events)
	}
	if res.Events[1].Kind != EventGameOver || res.Events[1].Reason != EndQuiz {
		t.Errorf("second event = %+v, want game over by quiz", res.Events[1])
	}

	// The next frame starts with a fresh event list.
	if next := g.Step(input(), frame); hasEvent(next, EventAnswered) {
		t.Error("answer events leaked into the next step")
	}
}

func TestThreeWrongAnswersEndRun(t *testing.T) {
	g := newTestGame(newFixedQuestions())
	for range 3 {
		openQuiz(t, g)
		g.SubmitAnswer(0)
	}
	if g.State().Phase != core.PhaseGameOver || g.EndReason() != EndQuiz {
		t.Errorf("phase=%v reason=%v", g.State().Phase, g.EndReason())
	}
	if g.State().Health <= 0 {
		t.Error("quiz loss should leave health above zero")
	}
}

func TestNilProviderIgnoresCards(t *testing.T) {
	g := newTestGame(nil)
	clearWorld(g)
	g.pool.Cards = append(g.pool.Cards, Card{ID: 5, Lane: 1, Pos: core.Vec3{Z: -0.2}})

	res := g.Step(input(), frame)
	if res.State.Phase != core.PhaseRunning {
		t.Error("card pickup without a provider should not open a quiz")
	}
	if g.pool.Cards[0].Used {
		t.Error("card should not be consumed without a provider")
	}
}

func TestInvalidQuestionKeepsRunning(t *testing.T) {
	g := newTestGame(&fixedQuestions{q: quiz.Question{Prompt: "broken"}})
	clearWorld(g)
	g.pool.Cards = append(g.pool.Cards, Card{ID: 5, Lane: 1, Pos: core.Vec3{Z: -0.2}})

	if res := g.Step(input(), frame); res.State.Phase != core.PhaseRunning {
		t.Error("an invalid question should not open the quiz")
	}
}

func TestItemPickupEvent(t *testing.T) {
	g := newTestGame(nil)
	clearWorld(g)
	g.pool.Items = append(g.pool.Items, Item{ID: 4, Kind: KindSolar, Lane: 1, Pos: core.Vec3{Z: -0.2}})

	res := g.Step(input(), frame)
	if !hasEvent(res, EventItemCollected) {
		t.Fatal("expected item event")
	}
	if g.State().Score != 8 || g.State().Health != 100 {
		t.Errorf("state = %+v, want score 8 health 100", g.State())
	}
}

func TestLandingEvent(t *testing.T) {
	g := newTestGame(nil)
	clearWorld(g)
	g.Step(input(core.CommandJump), frame)

	landed := 0
	for range 120 {
		if hasEvent(g.Step(input(), frame), EventLanded) {
			landed++
		}
	}
	if landed != 1 {
		t.Errorf("landing events = %d, want 1", landed)
	}
}

func TestLongFrameIsSubstepped(t *testing.T) {
	g := newTestGame(nil)
	clearWorld(g)
	// A cactus 1.5 units ahead would be skipped by a single 0.2s step at 18 u/s.
	g.pool.Obstacles = append(g.pool.Obstacles, Obstacle{ID: 1, Kind: KindCactus, Lane: 1, Pos: core.Vec3{Z: -1.5}})

	res := g.Step(input(), 0.2)
	if res.State.Phase != core.PhaseGameOver {
		t.Errorf("phase = %v, long frame tunnelled through the obstacle", res.State.Phase)
	}
}

func TestSlideExpiresOnSimTime(t *testing.T) {
	g := newTestGame(nil)
	clearWorld(g)
	g.Step(input(core.CommandSlide), frame)
	if !g.Player().Sliding() {
		t.Fatal("slide should start")
	}

	g.Step(input(core.CommandTogglePause), frame)
	for range 100 {
		g.Step(input(), frame)
	}
	if !g.Player().Sliding() {
		t.Fatal("slide must not expire while paused")
	}

	g.Step(input(core.CommandTogglePause), frame)
	for range 40 {
		g.Step(input(), frame)
	}
	if g.Player().Sliding() {
		t.Error("slide should expire after 0.6s of running time")
	}
}

func TestCloseIsFinal(t *testing.T) {
	g := newTestGame(newFixedQuestions())
	g.Step(input(core.CommandSlide, core.CommandJump), frame)
	if g.timers.Pending() == 0 {
		t.Fatal("expected pending slide and smear timers")
	}

	g.Close()
	if g.timers.Pending() != 0 {
		t.Errorf("pending after close = %d", g.timers.Pending())
	}
	g.Close()
	if !g.Closed() {
		t.Error("Closed() should report true")
	}

	score := g.State().Score
	elapsed := g.Elapsed()
	res := g.Step(input(core.CommandLaneLeft), 1)
	if len(res.Events) != 0 || g.Elapsed() != elapsed || g.State().Score != score {
		t.Error("step after close should do nothing")
	}
	if !res.State.Exited {
		t.Error("closed game should report exited")
	}
	g.Reset(core.DefaultConfig())
	if !g.Closed() || g.Elapsed() != elapsed {
		t.Error("reset after close should do nothing")
	}
}

func TestLongRunInvariants(t *testing.T) {
	cmds := []core.Command{
		core.CommandNone, core.CommandNone, core.CommandNone,
		core.CommandLaneLeft, core.CommandLaneRight, core.CommandJump, core.CommandSlide,
	}

	for seed := int64(1); seed <= 5; seed++ {
		qp := newFixedQuestions()
		g := New(config.DefaultRunnerConfig(), qp)
		g.Reset(core.RuntimeConfig{Seed: seed})
		rng := rand.New(rand.NewSource(seed))

		obstacles, items := len(g.Pool().Obstacles), len(g.Pool().Items)
		cards := len(g.Pool().Cards)
		prevScore := 0

		for i := range 20000 {
			g.Step(input(cmds[rng.Intn(len(cmds))]), frame)
			if g.State().Phase == core.PhaseQuizOpen {
				g.SubmitAnswer(rng.Intn(3))
			}
			if g.State().GameOver() {
				g.Step(input(core.CommandRestart), frame)
				prevScore = 0
				// A restart lays out a new pool; sizes hold within each run.
				obstacles, items = len(g.Pool().Obstacles), len(g.Pool().Items)
				cards = len(g.Pool().Cards)
				continue
			}

			st := g.State()
			if st.Score < prevScore {
				t.Fatalf("seed %d frame %d: score decreased %d -> %d", seed, i, prevScore, st.Score)
			}
			prevScore = st.Score
			if st.Health < 0 || st.Health > 100 {
				t.Fatalf("seed %d frame %d: health %d out of range", seed, i, st.Health)
			}
			p := g.Pool()
			if len(p.Obstacles) != obstacles || len(p.Items) != items {
				t.Fatalf("seed %d frame %d: pool size changed", seed, i)
			}
			if len(p.Cards) < cards || len(p.Cards) > cards+1 {
				t.Fatalf("seed %d frame %d: cards = %d", seed, i, len(p.Cards))
			}
		}
	}
}
