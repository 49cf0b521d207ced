package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/danmaku/internal/hazard"
	"github.com/vovakirdan/danmaku/internal/sim"
)

func openTest(t *testing.T) *Store {
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTest(t)

	want := Run{Pattern: "shatter", Seed: 42, Ticks: 600, Spawned: 900, Peak: 120, PlayerHits: 3, Damage: 4.5, Absorbed: 7, WallHits: 300, Errors: 1}
	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	want.ID = id
	want.CreatedAt = got.CreatedAt
	if *got != want {
		t.Errorf("RunByID() = %+v, expected %+v", *got, want)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at was not parsed")
	}

	missing, err := store.RunByID(id + 100)
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v, expected nil, nil", missing, err)
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTest(t)

	runs := []Run{
		{Pattern: "vortex", PlayerHits: 5, Ticks: 100},
		{Pattern: "vortex", PlayerHits: 0, Ticks: 50},
		{Pattern: "vortex", PlayerHits: 0, Ticks: 300},
		{Pattern: "vortex", PlayerHits: 2, Ticks: 10},
		{Pattern: "zigzag", PlayerHits: 0, Ticks: 1000},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestRuns("vortex", 3)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(best))
	}
	expected := []struct{ hits, ticks int }{{0, 300}, {0, 50}, {2, 10}}
	for i, e := range expected {
		if best[i].PlayerHits != e.hits || best[i].Ticks != e.ticks {
			t.Errorf("best[%d] = %d hits/%d ticks, expected %d/%d", i, best[i].PlayerHits, best[i].Ticks, e.hits, e.ticks)
		}
	}

	all, err := store.AllRuns("vortex")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 vortex runs, got %d", len(all))
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Pattern != "zigzag" {
		t.Errorf("RecentRuns() = %+v, expected the zigzag run first", recent)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTest(t)

	store.SaveRun(Run{Pattern: "vortex"})
	store.SaveRun(Run{Pattern: "vortex"})
	store.SaveRun(Run{Pattern: "shatter"})

	if err := store.ClearRuns("vortex"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	vortex, _ := store.AllRuns("vortex")
	if len(vortex) != 0 {
		t.Errorf("Expected 0 vortex runs after clear, got %d", len(vortex))
	}
	shatter, _ := store.AllRuns("shatter")
	if len(shatter) != 1 {
		t.Errorf("shatter runs should not be affected by clearing vortex")
	}
}

func TestStorePatternStats(t *testing.T) {
	store := openTest(t)

	empty, err := store.GetPatternStats("vortex")
	if err != nil {
		t.Fatalf("GetPatternStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastRun.IsZero() {
		t.Errorf("GetPatternStats(empty) = %+v", empty)
	}

	store.SaveRun(Run{Pattern: "vortex", PlayerHits: 4, Peak: 10, Ticks: 100})
	store.SaveRun(Run{Pattern: "vortex", PlayerHits: 2, Peak: 30, Ticks: 200})
	store.SaveRun(Run{Pattern: "shatter", PlayerHits: 9, Peak: 5, Ticks: 10})

	st, err := store.GetPatternStats("vortex")
	if err != nil {
		t.Fatalf("GetPatternStats() failed: %v", err)
	}
	if st.Runs != 2 || st.FewestHit != 2 || st.AvgHits != 3 || st.MaxPeak != 30 || st.TotalTick != 300 {
		t.Errorf("GetPatternStats() = %+v", st)
	}

	all, err := store.GetAllPatternStats()
	if err != nil {
		t.Fatalf("GetAllPatternStats() failed: %v", err)
	}
	if len(all) != 2 || all["shatter"].FewestHit != 9 {
		t.Errorf("GetAllPatternStats() = %v", all)
	}
}

func TestSaveStats(t *testing.T) {
	store := openTest(t)

	st := sim.Stats{
		Scenario: "zigzag",
		Seed:     9,
		Stats:    hazard.Stats{Ticks: 60, Spawned: 12, Peak: 8, PlayerHits: 1, Damage: 1, WallHits: 4},
	}
	id, err := store.SaveStats(st)
	if err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}
	got, _ := store.RunByID(id)
	if got == nil || got.Pattern != "zigzag" || got.Seed != 9 || got.Ticks != 60 || got.Peak != 8 || got.WallHits != 4 {
		t.Errorf("RunByID() = %+v", got)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
