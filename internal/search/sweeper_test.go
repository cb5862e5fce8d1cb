package search

import (
	"context"
	"testing"
	"time"
)

// TestSweeper_DeletesExpiredEntries tests that expired cache rows are removed
func TestSweeper_DeletesExpiredEntries(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.SetCache(ctx, "expired", "abc123", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SetCache failed: %v", err)
	}
	if err := repo.SetCache(ctx, "fresh", "def456", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SetCache failed: %v", err)
	}

	deleted, err := repo.DeleteExpiredCache(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredCache failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted entry, got %d", deleted)
	}

	if _, err := repo.GetCachedSearchID(ctx, "expired"); err == nil {
		t.Error("expected expired entry to be gone")
	}
	if _, err := repo.GetCachedSearchID(ctx, "fresh"); err != nil {
		t.Errorf("expected fresh entry to survive, got %v", err)
	}
}

// TestSweeper_StopsOnCancel tests the background loop respects cancellation
func TestSweeper_StopsOnCancel(t *testing.T) {
	repo := NewMemoryRepository()

	ctx, cancel := context.WithCancel(context.Background())
	StartSweeper(ctx, repo, 5*time.Millisecond)

	if err := repo.SetCache(ctx, "expired", "abc123", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SetCache failed: %v", err)
	}

	// Give the loop a few ticks to run
	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(10 * time.Millisecond)

	if _, err := repo.GetCachedSearchID(context.Background(), "expired"); err == nil {
		t.Error("expected sweeper to delete expired entry")
	}
}
