package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(RunRecord{Character: "solar-ranger", Score: 42}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("")
	if err != nil || high != 42 {
		t.Errorf("HighScore() = %d, %v; want 42", high, err)
	}
}

func TestSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Character: "solar-ranger", Score: 100, EndReason: "obstacle", Duration: 30},
		{Character: "solar-ranger", Score: 50, WrongAnswers: 3, EndReason: "quiz", Duration: 12},
		{Character: "solar-ranger", Score: 200, EndReason: "obstacle", Duration: 61},
		{Character: "ice-sentinel", Score: 500, EndReason: "health", Duration: 90, Player: "alice"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	solar, err := store.TopRuns("solar-ranger", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(solar) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(solar))
	}
	want := []int{200, 100, 50}
	for i, w := range want {
		if solar[i].Score != w {
			t.Errorf("run %d score = %d, want %d", i, solar[i].Score, w)
		}
	}
	if solar[2].WrongAnswers != 3 || solar[2].EndReason != "quiz" {
		t.Errorf("fields not stored: %+v", solar[2])
	}
	if solar[0].Player != "local" {
		t.Errorf("default player = %q, want local", solar[0].Player)
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Character != "ice-sentinel" || all[0].Player != "alice" {
		t.Errorf("top of all runs = %+v", all)
	}
}

func TestTopRunsDefaultLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 15 {
		if _, err := store.SaveRun(RunRecord{Character: "sand-ranger", Score: i}); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := store.TopRuns("sand-ranger", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 10 {
		t.Errorf("default limit returned %d runs, want 10", len(runs))
	}
}

func TestRecentRunsAndByID(t *testing.T) {
	store := openTestStore(t)
	first, _ := store.SaveRun(RunRecord{Character: "solar-ranger", Score: 1})
	second, _ := store.SaveRun(RunRecord{Character: "solar-ranger", Score: 2})

	recent, err := store.RecentRuns(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ID != second || recent[1].ID != first {
		t.Errorf("recent runs out of order: %+v", recent)
	}

	r, err := store.RunByID(first)
	if err != nil || r == nil || r.Score != 1 {
		t.Errorf("RunByID(%d) = %+v, %v", first, r, err)
	}
	if r.CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}

	missing, err := store.RunByID(9999)
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)
	high, err := store.HighScore("ice-sentinel")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty history, got %d", high)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(RunRecord{Character: "solar-ranger", Score: 10})
	store.SaveRun(RunRecord{Character: "ice-sentinel", Score: 20})

	if err := store.ClearRuns("solar-ranger"); err != nil {
		t.Fatal(err)
	}
	if h, _ := store.HighScore("solar-ranger"); h != 0 {
		t.Errorf("solar-ranger runs not cleared, high = %d", h)
	}
	if h, _ := store.HighScore("ice-sentinel"); h != 20 {
		t.Errorf("other character's runs should stay, high = %d", h)
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatal(err)
	}
	if h, _ := store.HighScore(""); h != 0 {
		t.Error("ClearRuns(\"\") should remove everything")
	}
}

func TestCharacterStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(RunRecord{Character: "sand-ranger", Score: 30, EndReason: "obstacle", Duration: 10})
	store.SaveRun(RunRecord{Character: "sand-ranger", Score: 90, EndReason: "quiz", Duration: 40})
	store.SaveRun(RunRecord{Character: "sand-ranger", Score: 60, EndReason: "obstacle", Duration: 25})
	store.SaveRun(RunRecord{Character: "ice-sentinel", Score: 5, EndReason: "health"})

	st, err := store.CharacterStats("sand-ranger")
	if err != nil {
		t.Fatalf("CharacterStats() failed: %v", err)
	}
	if st.Runs != 3 || st.HighScore != 90 || st.TotalScore != 180 || st.LongestRun != 40 {
		t.Errorf("stats = %+v", st)
	}
	if st.AvgScore != 60 {
		t.Errorf("avg = %v, want 60", st.AvgScore)
	}
	if st.EndReasons["obstacle"] != 2 || st.EndReasons["quiz"] != 1 {
		t.Errorf("end reasons = %v", st.EndReasons)
	}

	empty, err := store.CharacterStats("solar-ranger")
	if err != nil {
		t.Fatal(err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.AllCharacterStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all["ice-sentinel"].Runs != 1 {
		t.Errorf("all stats = %v", all)
	}
}
