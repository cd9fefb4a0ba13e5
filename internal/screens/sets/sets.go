package sets

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vuminh/ghinho/internal/api"
	"github.com/vuminh/ghinho/internal/events"
	"github.com/vuminh/ghinho/internal/router"
	"github.com/vuminh/ghinho/internal/screen"
	"github.com/vuminh/ghinho/internal/screens/study"
	sess "github.com/vuminh/ghinho/internal/session"
	"github.com/vuminh/ghinho/internal/store"
	"github.com/vuminh/ghinho/internal/ui/components"
	"github.com/vuminh/ghinho/internal/ui/layout"
	"github.com/vuminh/ghinho/internal/ui/theme"
)

// Backend is the slice of the API client the set list uses. It includes
// the study backend because selecting a set opens a study screen.
type Backend interface {
	study.Backend
	Sets(ctx context.Context) ([]api.Set, error)
}

var _ Backend = (*api.Client)(nil)

type setsLoadedMsg struct {
	Sets     []api.Set
	Progress map[int]sess.Progress
	Err      error
}

type progressChangedMsg events.ProgressUpdated

type progressRefreshedMsg struct {
	SetID    int
	Progress sess.Progress
}

// SetsScreen lists the learner's flashcard sets with their progress.
type SetsScreen struct {
	client  Backend
	bus     *events.Bus
	history store.HistoryRepo

	correctDelay time.Duration
	advanceDelay time.Duration

	sets     []api.Set
	progress map[int]sess.Progress
	selected int
	loaded   bool
	errMsg   string

	updates <-chan events.ProgressUpdated
	cancel  func()
}

var _ screen.Screen = (*SetsScreen)(nil)
var _ screen.KeyHintProvider = (*SetsScreen)(nil)
var _ screen.StreakProvider = (*SetsScreen)(nil)

// New creates a new SetsScreen.
func New(client Backend, bus *events.Bus, history store.HistoryRepo, correctDelay, advanceDelay time.Duration) *SetsScreen {
	s := &SetsScreen{
		client:       client,
		bus:          bus,
		history:      history,
		correctDelay: correctDelay,
		advanceDelay: advanceDelay,
		progress:     make(map[int]sess.Progress),
	}
	if bus != nil {
		s.updates, s.cancel = bus.Subscribe()
	}
	return s
}

func (s *SetsScreen) Init() tea.Cmd {
	return tea.Batch(s.loadSets(), s.waitForUpdate())
}

func (s *SetsScreen) Title() string {
	return "Sets"
}

// StreakDays reports the longest current streak across the loaded sets.
func (s *SetsScreen) StreakDays() int {
	best := 0
	for _, p := range s.progress {
		if p.StreakDays > best {
			best = p.StreakDays
		}
	}
	return best
}

func (s *SetsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Study"},
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.sets = msg.Sets
		s.progress = msg.Progress
		if s.selected >= len(s.sets) {
			s.selected = 0
		}
		return s, nil

	case progressChangedMsg:
		return s, tea.Batch(s.refreshProgress(msg.SetID), s.waitForUpdate())

	case progressRefreshedMsg:
		s.progress[msg.SetID] = msg.Progress
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SetsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if s.cancel != nil {
			s.cancel()
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.sets)-1 {
			s.selected++
		}
	case "r":
		s.loaded = false
		return s, s.loadSets()
	case "enter":
		if s.selected >= 0 && s.selected < len(s.sets) {
			set := s.sets[s.selected]
			return s, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: study.New(s.client, s.bus, s.history, set, s.correctDelay, s.advanceDelay),
				}
			}
		}
	}
	return s, nil
}

// loadSets fetches the set list and the progress for each set.
func (s *SetsScreen) loadSets() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		list, err := s.client.Sets(ctx)
		if err != nil {
			return setsLoadedMsg{Err: err}
		}

		progress := make(map[int]sess.Progress, len(list))
		for _, set := range list {
			p, err := s.client.Progress(ctx, set.ID)
			if err != nil {
				continue
			}
			progress[set.ID] = p
		}
		return setsLoadedMsg{Sets: list, Progress: progress}
	}
}

// refreshProgress re-fetches one set's progress after a change signal.
func (s *SetsScreen) refreshProgress(setID int) tea.Cmd {
	return func() tea.Msg {
		p, err := s.client.Progress(context.Background(), setID)
		if err != nil {
			return nil
		}
		return progressRefreshedMsg{SetID: setID, Progress: p}
	}
}

// waitForUpdate blocks on the next progress signal from the bus.
func (s *SetsScreen) waitForUpdate() tea.Cmd {
	if s.updates == nil {
		return nil
	}
	ch := s.updates
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return progressChangedMsg(ev)
	}
}

func (s *SetsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s\n\nPress r to retry or Esc to go back.", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading sets...")
	}
	if len(s.sets) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sets yet. Create one on the web app first.")
	}

	var b strings.Builder
	b.WriteString("\n")

	barWidth := min(width-50, 30)
	if barWidth < 10 {
		barWidth = 10
	}

	for i, set := range s.sets {
		prefix := "  "
		titleStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			titleStyle = titleStyle.Foreground(theme.Primary).Bold(true)
		}

		p := s.progress[set.ID]
		pct := 0.0
		pctLabel := "not started"
		if p.TotalCards > 0 {
			pct = float64(p.CardsStudied) / float64(p.TotalCards)
			pctLabel = fmt.Sprintf("%d/%d studied", p.CardsStudied, p.TotalCards)
		}
		bar := components.NewProgressBar("", pct, false, barWidth)

		line := fmt.Sprintf("%s%-28s %s  %s",
			prefix,
			titleStyle.Render(truncate(set.Title, 28)),
			bar.View(),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(pctLabel),
		)
		b.WriteString("  " + line + "\n")

		if i == s.selected && set.Description != "" {
			b.WriteString("      " + lipgloss.NewStyle().
				Foreground(theme.TextDim).Italic(true).
				Render(truncate(set.Description, width-10)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
