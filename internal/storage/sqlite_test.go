package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-memory/internal/games/memory"
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

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveLevel("current_level", 9); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	level, ok, err := store.LoadLevel("current_level")
	if err != nil || !ok || level != 9 {
		t.Errorf("LoadLevel() = %d, %v, %v; want 9, true, nil", level, ok, err)
	}
}

func TestStoreLevelUpsert(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LoadLevel("current_level"); err != nil || ok {
		t.Fatalf("empty store LoadLevel() ok=%v err=%v", ok, err)
	}

	for _, level := range []int{1, 5, 2} {
		if err := store.SaveLevel("current_level", level); err != nil {
			t.Fatalf("SaveLevel(%d) failed: %v", level, err)
		}
	}

	level, ok, err := store.LoadLevel("current_level")
	if err != nil || !ok || level != 2 {
		t.Errorf("LoadLevel() = %d, %v, %v; want 2", level, ok, err)
	}
}

func TestProgressKey(t *testing.T) {
	tests := []struct {
		player string
		want   string
	}{
		{"", "current_level"},
		{DefaultPlayer, "current_level"},
		{"alice", "current_level:alice"},
		{RemotePlayer("alice"), "current_level:ssh:alice"},
		{RemotePlayer(DefaultPlayer), "current_level:ssh:local"},
	}

	for _, tt := range tests {
		if got := ProgressKey(tt.player); got != tt.want {
			t.Errorf("ProgressKey(%q) = %q, want %q", tt.player, got, tt.want)
		}
	}
}

func TestStoreProgressBackendPerPlayer(t *testing.T) {
	store := openTestStore(t)

	local := memory.NewProgressStore(store.Progress(DefaultPlayer), 100, nil)
	alice := memory.NewProgressStore(store.Progress("alice"), 100, nil)

	local.Save(4)
	alice.Save(17)

	if got := memory.NewProgressStore(store.Progress(DefaultPlayer), 100, nil).Load(); got != 4 {
		t.Errorf("local level = %d, want 4", got)
	}
	if got := memory.NewProgressStore(store.Progress("alice"), 100, nil).Load(); got != 17 {
		t.Errorf("alice level = %d, want 17", got)
	}
	if got := memory.NewProgressStore(store.Progress("bob"), 100, nil).Load(); got != 1 {
		t.Errorf("bob level = %d, want 1", got)
	}
}

func TestStoreRemoteLocalUserIsolated(t *testing.T) {
	store := openTestStore(t)

	local := memory.NewProgressStore(store.Progress(DefaultPlayer), 100, nil)
	remote := memory.NewProgressStore(store.Progress(RemotePlayer(DefaultPlayer)), 100, nil)
	local.Save(12)
	remote.Save(3)

	if got := memory.NewProgressStore(store.Progress(DefaultPlayer), 100, nil).Load(); got != 12 {
		t.Errorf("local level = %d, want 12", got)
	}
	store.Recorder(RemotePlayer(DefaultPlayer)).RecordAttempt(memory.Attempt{Level: 3, Outcome: memory.OutcomeCleared})
	if attempts, _ := store.RecentAttempts(DefaultPlayer, 10); len(attempts) != 0 {
		t.Errorf("remote attempt recorded for the local player: %+v", attempts)
	}
}

func TestStoreResetProgress(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveLevel(ProgressKey("alice"), 30); err != nil {
		t.Fatal(err)
	}

	if err := store.ResetProgress("alice"); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	level, ok, _ := store.LoadLevel(ProgressKey("alice"))
	if !ok || level != 1 {
		t.Errorf("level after reset = %d (%v), want 1", level, ok)
	}
}

func TestStoreAttempts(t *testing.T) {
	store := openTestStore(t)
	rec := store.Recorder(DefaultPlayer)

	attempts := []memory.Attempt{
		{Level: 1, Outcome: memory.OutcomeCleared, SecondsLeft: 12, MatchedPairs: 2, TotalPairs: 2},
		{Level: 2, Outcome: memory.OutcomeTimedOut, SecondsLeft: 0, MatchedPairs: 1, TotalPairs: 2},
		{Level: 2, Outcome: memory.OutcomeCleared, SecondsLeft: 3, MatchedPairs: 2, TotalPairs: 2},
		{Level: 3, Outcome: memory.OutcomeRestarted, SecondsLeft: 20, MatchedPairs: 0, TotalPairs: 3},
	}
	for _, a := range attempts {
		if err := rec.RecordAttempt(a); err != nil {
			t.Fatalf("RecordAttempt() failed: %v", err)
		}
	}
	if err := store.Recorder("alice").RecordAttempt(memory.Attempt{Level: 9, Outcome: memory.OutcomeCleared}); err != nil {
		t.Fatal(err)
	}

	recent, err := store.RecentAttempts(DefaultPlayer, 3)
	if err != nil {
		t.Fatalf("RecentAttempts() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d attempts, want 3", len(recent))
	}
	if recent[0].Outcome != memory.OutcomeRestarted || recent[0].Level != 3 {
		t.Errorf("newest attempt = %+v", recent[0])
	}
	if recent[2].Outcome != memory.OutcomeTimedOut {
		t.Errorf("oldest returned attempt = %+v", recent[2])
	}
	seen := make(map[string]bool)
	for _, e := range recent {
		if e.AttemptID == "" || seen[e.AttemptID] {
			t.Errorf("bad attempt id %q", e.AttemptID)
		}
		seen[e.AttemptID] = true
		if e.CreatedAt.IsZero() {
			t.Error("CreatedAt not parsed")
		}
	}

	best, err := store.BestLevel(DefaultPlayer)
	if err != nil || best != 2 {
		t.Errorf("BestLevel() = %d, %v; want 2", best, err)
	}

	stats, err := store.PlayerStats(DefaultPlayer)
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if stats.Attempts != 4 || stats.Cleared != 2 || stats.TimedOut != 1 || stats.Restarted != 1 || stats.BestLevel != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreEmptyPlayer(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestLevel("nobody")
	if err != nil || best != 0 {
		t.Errorf("BestLevel() = %d, %v; want 0", best, err)
	}
	stats, err := store.PlayerStats("nobody")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if stats.Attempts != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreClearAttempts(t *testing.T) {
	store := openTestStore(t)
	store.Recorder("alice").RecordAttempt(memory.Attempt{Level: 1, Outcome: memory.OutcomeCleared})
	store.Recorder("bob").RecordAttempt(memory.Attempt{Level: 1, Outcome: memory.OutcomeCleared})

	if err := store.ClearAttempts("alice"); err != nil {
		t.Fatalf("ClearAttempts() failed: %v", err)
	}

	alice, _ := store.RecentAttempts("alice", 10)
	if len(alice) != 0 {
		t.Errorf("alice has %d attempts after clear", len(alice))
	}
	bob, _ := store.RecentAttempts("bob", 10)
	if len(bob) != 1 {
		t.Error("clearing alice affected bob")
	}
}
