package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vuminh/ghinho/internal/events"
	"github.com/vuminh/ghinho/internal/router"
	"github.com/vuminh/ghinho/internal/screen"
	"github.com/vuminh/ghinho/internal/screens/history"
	"github.com/vuminh/ghinho/internal/screens/sets"
	"github.com/vuminh/ghinho/internal/store"
	"github.com/vuminh/ghinho/internal/ui/components"
	"github.com/vuminh/ghinho/internal/ui/theme"
)

// HomeScreen is the entry menu of the application.
type HomeScreen struct {
	menu      components.Menu
	serverURL string
	loggedIn  bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(client sets.Backend, bus *events.Bus, historyRepo store.HistoryRepo, serverURL string, loggedIn bool, correctDelay, advanceDelay time.Duration) *HomeScreen {
	items := []components.MenuItem{
		{
			Label:    "Study",
			Hint:     "pick a set and review cards",
			Disabled: !loggedIn,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: sets.New(client, bus, historyRepo, correctDelay, advanceDelay),
					}
				}
			},
		},
		{
			Label:    "History",
			Hint:     "past study sessions",
			Disabled: historyRepo == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(historyRepo)}
				}
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		serverURL: serverURL,
		loggedIn:  loggedIn,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Thẻ Ghi Nhớ"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("flashcards in your terminal"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))
	b.WriteString("\n")

	status := fmt.Sprintf("Server: %s", h.serverURL)
	if !h.loggedIn {
		status += lipgloss.NewStyle().Foreground(theme.Accent).Render("  (not logged in, run `ghinho login`)")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(status))

	return b.String()
}
