package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bioooz/typoer/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "typoer.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Minute)
		status := "completed"
		if i == 1 {
			status = "cancelled"
		}
		id, err := st.InsertRun(ctx, model.Run{
			StartedAt:  start,
			EndedAt:    start.Add(1500 * time.Millisecond),
			Status:     status,
			Backend:    "terminal",
			WPM:        100,
			Accuracy:   0.9,
			Correction: 0.4,
			Chars:      10 + i,
			Typos:      i,
			Corrected:  i,
			Lines:      1,
			DurationMs: 1500,
		})
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		if id == "" {
			t.Fatalf("expected generated id")
		}
		ids = append(ids, id)
	}

	runs, err := st.ListRuns(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, run := range runs {
		if run.ID != ids[i] {
			t.Fatalf("run %d: expected id %s, got %s", i, ids[i], run.ID)
		}
	}
	if !runs[0].StartedAt.Equal(base) {
		t.Fatalf("unexpected started_at: %v", runs[0].StartedAt)
	}
	if runs[2].Chars != 12 || runs[2].Typos != 2 {
		t.Fatalf("unexpected counters: %+v", runs[2])
	}

	last, err := st.ListRuns(ctx, model.HistoryConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last runs: %v", err)
	}
	if len(last) != 2 || last[0].ID != ids[1] || last[1].ID != ids[2] {
		t.Fatalf("expected the two most recent runs oldest first, got %+v", last)
	}

	cancelled, err := st.ListRuns(ctx, model.HistoryConfig{Status: "cancelled"})
	if err != nil {
		t.Fatalf("list cancelled runs: %v", err)
	}
	if len(cancelled) != 1 || cancelled[0].ID != ids[1] {
		t.Fatalf("expected one cancelled run, got %+v", cancelled)
	}
}

func TestInsertRunKeepsExplicitID(t *testing.T) {
	st := openTestStore(t)
	now := time.Now()
	id, err := st.InsertRun(context.Background(), model.Run{ID: "fixed", StartedAt: now, EndedAt: now, Status: "failed", Error: "boom"})
	if err != nil {
		t.Fatalf("insert run: %v", err)
	}
	if id != "fixed" {
		t.Fatalf("expected explicit id, got %s", id)
	}
	runs, err := st.ListRuns(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Error != "boom" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}
