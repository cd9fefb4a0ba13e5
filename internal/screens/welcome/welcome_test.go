package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/vuminh/ghinho/internal/router"
	"github.com/vuminh/ghinho/internal/screen"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                             { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                      { return "home" }
func (stubScreen) Title() string                             { return "Home" }

func newTestWelcome() *WelcomeScreen {
	return New(func() screen.Screen { return stubScreen{} })
}

func TestWelcomeScreen_KeySkipsToHome(t *testing.T) {
	w := newTestWelcome()

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Home" {
		t.Errorf("replacement title = %q, want Home", msg.Screen.Title())
	}
}

func TestWelcomeScreen_TransitionsOnlyOnce(t *testing.T) {
	w := newTestWelcome()

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	_, cmd = w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected the second keypress to be a no-op")
	}
}

func TestWelcomeScreen_RevealsBannerOverTime(t *testing.T) {
	w := newTestWelcome()

	early := w.View(80, 24)
	if strings.Contains(early, "press any key") {
		t.Error("hint should not show before the animation finishes")
	}

	var scr screen.Screen = w
	for i := 0; i < 12; i++ {
		scr, _ = scr.Update(tickMsg(time.Now()))
	}
	late := scr.View(80, 24)
	if !strings.Contains(late, "press any key") {
		t.Error("expected the continue hint after the animation")
	}
}

func TestRenderBanner_CompactFallback(t *testing.T) {
	if got := RenderBanner(40); !strings.Contains(got, bannerCompact) {
		t.Errorf("expected compact banner for narrow width, got %q", got)
	}
	if got := RenderBanner(100); strings.Contains(got, bannerCompact) {
		t.Error("expected full banner for wide terminal")
	}
}
