package session

import (
	"context"
	"errors"
	"testing"
)

// fakeSource implements CardSource for queue tests.
type fakeSource struct {
	due      []Card
	dueErr   error
	all      []Card
	allErr   error
	resetErr error

	resetCalls int
	dueCalls   int
	allCalls   int
}

func (f *fakeSource) DueCards(_ context.Context, _ int) ([]Card, error) {
	f.dueCalls++
	return f.due, f.dueErr
}

func (f *fakeSource) Cards(_ context.Context, _ int) ([]Card, error) {
	f.allCalls++
	return f.all, f.allErr
}

func (f *fakeSource) ResetProgress(_ context.Context, _ int) error {
	f.resetCalls++
	return f.resetErr
}

func TestLoadQueue_ContinueUsesDueCards(t *testing.T) {
	src := &fakeSource{
		due: []Card{{ID: 1, EaseFactor: 2.2, Interval: 4}},
		all: testCards(10),
	}

	cards, err := LoadQueue(context.Background(), src, 7, ModeContinue)
	if err != nil {
		t.Fatalf("LoadQueue: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len(cards) = %d, want 1 (due list)", len(cards))
	}
	if src.resetCalls != 0 {
		t.Errorf("resetCalls = %d, want 0 in continue mode", src.resetCalls)
	}
	if cards[0].EaseFactor != 2.2 {
		t.Errorf("EaseFactor = %v, want server value preserved", cards[0].EaseFactor)
	}
}

func TestLoadQueue_ContinueFallsBackWhenDueEmpty(t *testing.T) {
	src := &fakeSource{all: testCards(3)}

	cards, err := LoadQueue(context.Background(), src, 7, ModeContinue)
	if err != nil {
		t.Fatalf("LoadQueue: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3 (fallback to full list)", len(cards))
	}
	for _, c := range cards {
		if c.EaseFactor != DefaultEaseFactor || c.Interval != DefaultInterval {
			t.Errorf("card %d missing display defaults: ef=%v interval=%d", c.ID, c.EaseFactor, c.Interval)
		}
		if c.NextReviewDate != nil {
			t.Errorf("card %d NextReviewDate should stay nil", c.ID)
		}
	}
}

func TestLoadQueue_ContinueDueFetchFailureDegrades(t *testing.T) {
	src := &fakeSource{
		dueErr: errors.New("connection refused"),
		all:    testCards(2),
	}

	cards, err := LoadQueue(context.Background(), src, 7, ModeContinue)
	if err != nil {
		t.Fatalf("fetch failures must not escape LoadQueue: %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("len(cards) = %d, want 2 (fell back past the failed due fetch)", len(cards))
	}
}

func TestLoadQueue_RestartResetsThenLoadsAll(t *testing.T) {
	src := &fakeSource{
		due: testCards(1), // must be ignored
		all: testCards(10),
	}

	cards, err := LoadQueue(context.Background(), src, 7, ModeRestart)
	if err != nil {
		t.Fatalf("LoadQueue: %v", err)
	}
	if src.resetCalls != 1 {
		t.Errorf("resetCalls = %d, want 1", src.resetCalls)
	}
	if src.dueCalls != 0 {
		t.Errorf("dueCalls = %d, want 0 in restart mode", src.dueCalls)
	}
	if len(cards) != 10 {
		t.Errorf("len(cards) = %d, want 10", len(cards))
	}
}

func TestLoadQueue_RestartResetFailureSurfaces(t *testing.T) {
	src := &fakeSource{resetErr: errors.New("500")}

	if _, err := LoadQueue(context.Background(), src, 7, ModeRestart); err == nil {
		t.Error("reset failure is a mutation failure and must surface")
	}
	if src.allCalls != 0 {
		t.Errorf("allCalls = %d, want 0 after failed reset", src.allCalls)
	}
}

func TestLoadQueue_EmptyEverywhereIsTerminal(t *testing.T) {
	src := &fakeSource{}

	cards, err := LoadQueue(context.Background(), src, 7, ModeContinue)
	if err != nil {
		t.Fatalf("LoadQueue: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("len(cards) = %d, want 0 (nothing to study)", len(cards))
	}
}
