package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

// openTestDB uses a file-backed database: with :memory: every pooled
// connection would get its own empty database.
func openTestDB(t *testing.T) *RunsRepo {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRunsRepo(db)
}

func TestSaveAndRecentRuns(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	first := core.AnalysisRun{
		Identity:  "spez",
		Question:  "what subs?",
		Success:   true,
		Answer:    "mostly r/announcements",
		ItemCount: 42,
		Chunks:    1,
		Duration:  1500 * time.Millisecond,
	}
	id, err := repo.SaveRun(ctx, first)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}

	second := core.AnalysisRun{Identity: "someone", Question: "q2", Success: false, Answer: "Error: boom"}
	if _, err := repo.SaveRun(ctx, second); err != nil {
		t.Fatalf("SaveRun second: %v", err)
	}

	runs, err := repo.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].Identity != "someone" {
		t.Errorf("runs[0].Identity = %q, want someone", runs[0].Identity)
	}
	got := runs[1]
	if got.Identity != first.Identity || got.Question != first.Question ||
		!got.Success || got.Answer != first.Answer ||
		got.ItemCount != first.ItemCount || got.Chunks != first.Chunks ||
		got.Duration != first.Duration {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestRecentRunsLimit(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.SaveRun(ctx, core.AnalysisRun{Identity: "u", Question: "q"}); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := repo.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
}

func TestRecentRunsEmpty(t *testing.T) {
	repo := openTestDB(t)

	runs, err := repo.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}
