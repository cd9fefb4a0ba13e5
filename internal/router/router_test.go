package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/vuminh/ghinho/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "sets"})

	study := &stubScreen{title: "study"}
	r.Push(study)

	if r.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "study" {
		t.Errorf("Active = %q, want study", r.Active().Title())
	}
	if !study.initRan {
		t.Error("Init() should run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	r := New(&stubScreen{title: "sets"})
	r.Push(&stubScreen{title: "study"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "sets" {
		t.Errorf("Active = %q, want sets", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "sets"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("Depth = %d after pop at bottom, want 1", r.Depth())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "study"})

	summary := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})

	if r.Depth() != 1 {
		t.Errorf("Depth = %d after replace, want 1", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("Active = %q, want summary", r.Active().Title())
	}
	if !summary.initRan {
		t.Error("Init() should run via ReplaceScreenMsg")
	}
}

func TestNavigationMsgsViaUpdate(t *testing.T) {
	r := New(&stubScreen{title: "sets"})

	pushed := &stubScreen{title: "study"}
	r.Update(PushScreenMsg{Screen: pushed})
	if r.Active().Title() != "study" {
		t.Errorf("Active = %q after PushScreenMsg, want study", r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "sets" {
		t.Errorf("Active = %q after PopScreenMsg, want sets", r.Active().Title())
	}
}
