package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	runs := []Run{
		{Filename: "a.txt", Scenes: 3, Pages: 1, Elapsed: 120 * time.Millisecond, Output: "a.xlsx"},
		{Filename: "b.pdf", Scenes: 10, Pages: 4, Elapsed: 2 * time.Second, Output: "b.csv"},
	}
	for _, r := range runs {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, want 2", len(got))
	}
	// Newest first.
	if got[0].Filename != "b.pdf" || got[1].Filename != "a.txt" {
		t.Fatalf("order = %q, %q", got[0].Filename, got[1].Filename)
	}
	if got[0].Scenes != 10 || got[0].Elapsed != 2*time.Second {
		t.Fatalf("run = %+v", got[0])
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatalf("createdAt not recorded")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Run{Filename: "x.txt", Output: "x.csv"}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, want 2", len(got))
	}
}
