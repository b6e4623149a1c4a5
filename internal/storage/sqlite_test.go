package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun("flappy", core.RunSummary{Seed: 1, Ticks: 10}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	n, err := store.RunCount("flappy")
	if err != nil {
		t.Fatalf("RunCount() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", n)
	}
}

func TestStoreSaveAndRetrieveRun(t *testing.T) {
	store := openTestStore(t)

	run := core.RunSummary{Seed: -42, Ticks: 512, Inputs: []int{0, 17, 18, 400}, Score: 3}
	id, err := store.SaveRun("flappy", run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("Expected a UUID, got %q", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.GameID != "flappy" || got.Seed != -42 || got.Ticks != 512 || got.Score != 3 {
		t.Errorf("Unexpected record: %+v", *got)
	}
	if len(got.Inputs) != 4 || got.Inputs[1] != 17 || got.Inputs[3] != 400 {
		t.Errorf("Inputs = %v, want %v", got.Inputs, run.Inputs)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	s := got.Summary()
	if s.Seed != run.Seed || s.Ticks != run.Ticks || s.Score != run.Score {
		t.Errorf("Summary() = %+v", s)
	}
}

func TestStoreRunWithoutInputs(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun("flappy", core.RunSummary{Seed: 5, Ticks: 26})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	got, err := store.RunByID(id)
	if err != nil || got == nil {
		t.Fatalf("RunByID() = %v, %v", got, err)
	}
	if len(got.Inputs) != 0 {
		t.Errorf("Inputs = %v, want none", got.Inputs)
	}
}

func TestStoreRunByIDPrefix(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun("flappy", core.RunSummary{Seed: 1, Ticks: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id[:8])
	if err != nil {
		t.Fatalf("RunByID(prefix) failed: %v", err)
	}
	if got == nil || got.ID != id {
		t.Errorf("RunByID(%q) = %v, want %s", id[:8], got, id)
	}

	missing, err := store.RunByID("zzzz")
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v, want nil, nil", missing, err)
	}
}

func TestStoreRunByIDAmbiguous(t *testing.T) {
	store := openTestStore(t)

	// Insert two rows sharing a prefix directly; generated UUIDs rarely do.
	for _, id := range []string{"abc-1", "abc-2"} {
		if _, err := store.db.Exec(
			"INSERT INTO runs (id, game_id, seed, ticks, score) VALUES (?, 'flappy', 1, 1, 0)", id,
		); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	_, err := store.RunByID("abc")
	if !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("RunByID(abc) error = %v, want ErrAmbiguousID", err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun("flappy", core.RunSummary{Seed: int64(i), Ticks: 10, Score: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun("other", core.RunSummary{Seed: 99, Ticks: 1})

	runs, err := store.RecentRuns("flappy", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first
	for i, want := range []int64{4, 3, 2} {
		if runs[i].Seed != want {
			t.Errorf("runs[%d].Seed = %d, want %d", i, runs[i].Seed, want)
		}
	}

	all, err := store.RecentRuns("flappy", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 flappy runs with default limit, got %d", len(all))
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("flappy", core.RunSummary{Ticks: 1})
	store.SaveRun("flappy", core.RunSummary{Ticks: 2})
	store.SaveRun("other", core.RunSummary{Ticks: 3})

	if err := store.ClearRuns("flappy"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if n, _ := store.RunCount("flappy"); n != 0 {
		t.Errorf("Expected 0 flappy runs after clear, got %d", n)
	}
	if n, _ := store.RunCount("other"); n != 1 {
		t.Errorf("Other runs should not be affected, got %d", n)
	}
}

func TestDecodeInputs(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"0", []int{0}, false},
		{"1,20,300", []int{1, 20, 300}, false},
		{"1,,2", nil, true},
		{"x", nil, true},
	}

	for _, tt := range tests {
		got, err := decodeInputs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("decodeInputs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("decodeInputs(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("decodeInputs(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
		if encodeInputs(got) != tt.in {
			t.Errorf("encodeInputs(%v) = %q, want %q", got, encodeInputs(got), tt.in)
		}
	}
}
