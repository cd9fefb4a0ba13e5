package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/vuminh/ghinho/internal/router"
	sess "github.com/vuminh/ghinho/internal/session"
)

func testSummary() Summary {
	return Summary{
		SetTitle:     "Basic Vocabulary",
		Stats:        sess.Stats{Studied: 3, Correct: 2, Incorrect: 1},
		TotalStudied: 5,
		TotalCards:   5,
		Percent:      100,
		Duration:     90 * time.Second,
	}
}

func TestSummary_Accuracy(t *testing.T) {
	tests := []struct {
		name  string
		stats sess.Stats
		want  int
	}{
		{"two of three", sess.Stats{Studied: 3, Correct: 2, Incorrect: 1}, 66},
		{"perfect", sess.Stats{Studied: 4, Correct: 4}, 100},
		{"nothing studied", sess.Stats{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summary{Stats: tt.stats}.Accuracy()
			if got != tt.want {
				t.Errorf("Accuracy() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSummaryScreen_View(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if !strings.Contains(view, "Session complete!") {
		t.Error("expected completion title in view")
	}
	if !strings.Contains(view, "Basic Vocabulary") {
		t.Error("expected set title in view")
	}
	if !strings.Contains(view, "Accuracy: 66%") {
		t.Errorf("expected accuracy line in view, got:\n%s", view)
	}
}

func TestSummaryScreen_View_EndedEarly(t *testing.T) {
	sum := testSummary()
	sum.EndedEarly = true
	view := New(sum).View(80, 24)
	if !strings.Contains(view, "Session ended") {
		t.Error("expected early-end title in view")
	}
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
