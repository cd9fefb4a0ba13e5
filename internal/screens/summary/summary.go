package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vuminh/ghinho/internal/router"
	"github.com/vuminh/ghinho/internal/screen"
	sess "github.com/vuminh/ghinho/internal/session"
	"github.com/vuminh/ghinho/internal/ui/components"
	"github.com/vuminh/ghinho/internal/ui/layout"
	"github.com/vuminh/ghinho/internal/ui/theme"
)

// Summary carries the final numbers of a finished study session.
type Summary struct {
	SetTitle     string
	Stats        sess.Stats
	TotalStudied int
	TotalCards   int
	Percent      int
	Duration     time.Duration
	EndedEarly   bool
}

// Accuracy returns this session's correct percentage, 0 when nothing
// was studied.
func (s Summary) Accuracy() int {
	if s.Stats.Studied == 0 {
		return 0
	}
	return s.Stats.Correct * 100 / s.Stats.Studied
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to sets"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	title := "Session complete!"
	if sum.EndedEarly {
		title = "Session ended"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n")
	if sum.SetTitle != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(sum.SetTitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Studied: %d        Correct: %d        Missed: %d        Accuracy: %d%%",
		sum.Stats.Studied, sum.Stats.Correct, sum.Stats.Incorrect, sum.Accuracy())
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if sum.TotalCards > 0 {
		bar := components.NewProgressBar(
			fmt.Sprintf("Set progress (%d/%d)", sum.TotalStudied, sum.TotalCards),
			float64(sum.Percent)/100,
			true,
			min(width-8, 60),
		)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to go back."))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
