package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/column-clearer/internal/core"
	"github.com/vovakirdan/column-clearer/internal/replay"
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

func sampleReplay(gameID string, seed int64, started time.Time) replay.Data {
	return replay.Data{
		Version:    replay.Version,
		GameID:     gameID,
		Seed:       seed,
		ConfigName: "classic",
		ConfigYAML: "name: classic\n",
		Width:      500,
		Height:     800,
		StartTime:  started,
		Frames:     120,
		Events: []replay.Event{
			{Tick: 0, Action: core.ActionLeftPress},
			{Tick: 30, Action: core.ActionLeftRelease},
			{Tick: 30, Action: core.ActionPointer, X: 123.5},
			{Tick: 90, Action: core.ActionResize, X: 640, Y: 480},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsReplays(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveReplay(sampleReplay("columns", 1, time.Now()), "local"); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	entries, err := store.ListReplays("", 10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 replay after reopen, got %d", len(entries))
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	started := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	want := sampleReplay("columns", 42, started)

	id, err := store.SaveReplay(want, "local")
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("Expected positive ID, got %d", id)
	}

	got, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}

	if got.ID != id || got.GameID != "columns" || got.Seed != 42 || got.Version != replay.Version {
		t.Errorf("Header mismatch: %+v", got)
	}
	if got.ConfigName != want.ConfigName || got.ConfigYAML != want.ConfigYAML {
		t.Errorf("Config mismatch: %q %q", got.ConfigName, got.ConfigYAML)
	}
	if got.Width != 500 || got.Height != 800 || got.Frames != 120 {
		t.Errorf("Size/frames mismatch: %vx%v %d", got.Width, got.Height, got.Frames)
	}
	if !got.StartTime.Equal(started) {
		t.Errorf("StartTime = %v, expected %v", got.StartTime, started)
	}

	if len(got.Events) != len(want.Events) {
		t.Fatalf("Expected %d events, got %d", len(want.Events), len(got.Events))
	}
	for i := range want.Events {
		if got.Events[i] != want.Events[i] {
			t.Errorf("Event %d = %+v, expected %+v", i, got.Events[i], want.Events[i])
		}
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadReplay(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreSaveEmptyReplay(t *testing.T) {
	store := openTestStore(t)

	d := sampleReplay("columns", 5, time.Now())
	d.Events = nil
	id, err := store.SaveReplay(d, "local")
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if got.Events == nil || len(got.Events) != 0 {
		t.Errorf("Expected empty non-nil events, got %#v", got.Events)
	}
}

func TestStoreListReplays(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := store.SaveReplay(sampleReplay("columns", int64(i), base.Add(time.Duration(i)*time.Minute)), "local"); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}
	if _, err := store.SaveReplay(sampleReplay("other", 100, base), "alice"); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	entries, err := store.ListReplays("columns", 3)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 replays with limit, got %d", len(entries))
	}

	// Newest first: seeds 4, 3, 2
	for i, wantSeed := range []int64{4, 3, 2} {
		if entries[i].Seed != wantSeed {
			t.Errorf("Entry %d seed = %d, expected %d", i, entries[i].Seed, wantSeed)
		}
	}
	if entries[0].Events != 4 || entries[0].Frames != 120 || entries[0].Session != "local" {
		t.Errorf("Entry summary mismatch: %+v", entries[0])
	}

	all, err := store.ListReplays("", 100)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 replays across games, got %d", len(all))
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	keep, _ := store.SaveReplay(sampleReplay("columns", 1, time.Now()), "local")
	drop, _ := store.SaveReplay(sampleReplay("columns", 2, time.Now()), "local")

	if err := store.DeleteReplay(drop); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.LoadReplay(drop); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleted replay should be gone, got %v", err)
	}
	if _, err := store.LoadReplay(keep); err != nil {
		t.Errorf("Other replay should not be affected: %v", err)
	}

	if err := store.DeleteReplay(drop); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleting twice should report ErrNotFound, got %v", err)
	}
}

func TestStoreReplayStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetReplayStats("columns")
	if err != nil {
		t.Fatalf("GetReplayStats() failed: %v", err)
	}
	if stats.Count != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	last := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store.SaveReplay(sampleReplay("columns", 1, last.Add(-time.Hour)), "local")
	store.SaveReplay(sampleReplay("columns", 2, last), "local")

	stats, err = store.GetReplayStats("columns")
	if err != nil {
		t.Fatalf("GetReplayStats() failed: %v", err)
	}
	if stats.Count != 2 || stats.TotalFrames != 240 {
		t.Errorf("Expected 2 replays / 240 frames, got %+v", stats)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, last)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested directories are created on demand
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
