package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestHistoryAppendAndRecent(t *testing.T) {
	st := openTestStore(t)
	repo := st.History()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, SessionRecord{
			ID:             uuid.New().String(),
			ServerID:       100 + i,
			SetID:          7,
			SetTitle:       "Từ vựng N5",
			Mode:           "continue",
			CardsStudied:   3,
			CardsCorrect:   2,
			CardsIncorrect: 1,
			DurationSecs:   240,
			CompletedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	recs, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].ServerID != 102 {
		t.Errorf("most recent ServerID = %d, want 102", recs[0].ServerID)
	}
	if recs[0].SetTitle != "Từ vựng N5" {
		t.Errorf("SetTitle = %q", recs[0].SetTitle)
	}
}

func TestHistoryRecentEmpty(t *testing.T) {
	st := openTestStore(t)

	recs, err := st.History().Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
}

func TestSessionRecordAccuracy(t *testing.T) {
	tests := []struct {
		studied, correct, want int
	}{
		{0, 0, 0},
		{4, 2, 50},
		{3, 3, 100},
		{3, 0, 0},
	}
	for _, tt := range tests {
		rec := SessionRecord{CardsStudied: tt.studied, CardsCorrect: tt.correct}
		if got := rec.Accuracy(); got != tt.want {
			t.Errorf("Accuracy(%d/%d) = %d, want %d", tt.correct, tt.studied, got, tt.want)
		}
	}
}
