package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vuminh/ghinho/internal/router"
	"github.com/vuminh/ghinho/internal/screen"
	"github.com/vuminh/ghinho/internal/store"
	"github.com/vuminh/ghinho/internal/ui/layout"
	"github.com/vuminh/ghinho/internal/ui/theme"
)

// historyLimit caps how many local records the screen loads.
const historyLimit = 50

type historyLoadedMsg struct {
	Records []store.SessionRecord
	Err     error
}

// HistoryScreen displays recent study sessions from the local record.
type HistoryScreen struct {
	repo     store.HistoryRepo
	records  []store.SessionRecord
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.HistoryRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		recs, err := s.repo.Recent(context.Background(), historyLimit)
		return historyLoadedMsg{Records: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Pick a set and start studying!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.CompletedAt.Format("Jan 02, 2006 15:04")
		mins := rec.DurationSecs / 60
		secs := rec.DurationSecs % 60

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		modeTag := ""
		if rec.Mode == "restart" {
			modeTag = lipgloss.NewStyle().Foreground(theme.Accent).Render(" (restarted)")
		}

		line := fmt.Sprintf("%s%s  %-24s %2d cards  %3d%% correct  %d:%02d",
			prefix, dateStr, rec.SetTitle, rec.CardsStudied, rec.Accuracy(), mins, secs)
		b.WriteString("  " + style.Render(line) + modeTag + "\n")
	}

	return b.String()
}
