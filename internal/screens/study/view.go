package study

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	sess "github.com/vuminh/ghinho/internal/session"
	"github.com/vuminh/ghinho/internal/ui/components"
	"github.com/vuminh/ghinho/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmEnd {
		return s.renderConfirmEnd(width)
	}

	switch s.phase {
	case sess.PhaseChoosing:
		return s.renderModeChoice(width)
	case sess.PhaseEmpty:
		return renderEmpty(width)
	case sess.PhaseActive:
		return s.renderCard(width)
	case sess.PhaseCompleting, sess.PhaseDone:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Wrapping up...")
	}
	return renderLoading(width)
}

// renderModeChoice renders the continue/restart prompt.
func (s *StudyScreen) renderModeChoice(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Pick up where you left off?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("You've studied %d of %d cards in this set.",
			s.progress.CardsStudied, s.progress.TotalCards)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.modeMenu.View()))
	return b.String()
}

// renderCard renders the active card with its input or revealed answer.
func (s *StudyScreen) renderCard(width int) string {
	state := s.state
	card := state.Current()
	if card == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	// Position line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Card %d/%d", state.CurrentIndex+1, len(state.Cards)))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d",
			components.CorrectMark, state.Stats.Correct,
			components.IncorrectMark, state.Stats.Incorrect,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(state.ProgressPercent())/100, true, width-8)
	b.WriteString("  " + bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	// Card front.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(card.Front))
	b.WriteString("\n\n")

	switch state.CardPhase {
	case sess.CardPresenting:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View()))
		b.WriteString("\n")
		if state.Attempt.Feedback == sess.FeedbackIncorrect {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Render(fmt.Sprintf("%s Not quite, try again (%d)", components.IncorrectMark, state.Attempt.WrongAttempts)))
			b.WriteString("\n")
		}
		if state.CanReveal() {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render("Press Tab to show the answer."))
			b.WriteString("\n")
		}

	case sess.CardGrading:
		if state.Attempt.Revealed {
			b.WriteString(s.renderRevealedAnswer(width, card))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Success).
				Bold(true).
				Render(components.CorrectMark + " Correct!"))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Saving..."))
		b.WriteString("\n")

	case sess.CardRevealed:
		b.WriteString(s.renderRevealedAnswer(width, card))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Enter to continue."))
		b.WriteString("\n")

	case sess.CardAdvancing:
		if state.Attempt.Revealed {
			b.WriteString(s.renderRevealedAnswer(width, card))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Success).
				Bold(true).
				Render(components.CorrectMark + " Correct!"))
		}
		b.WriteString("\n")
		if s.lastUpdate != nil {
			days := s.lastUpdate.NextReviewDays(time.Now())
			when := fmt.Sprintf("in %d days", days)
			switch days {
			case 0:
				when = "today"
			case 1:
				when = "tomorrow"
			}
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render("Next review " + when))
			b.WriteString("\n")
		}
	}

	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.saveErr))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *StudyScreen) renderRevealedAnswer(width int, card *sess.Card) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("The answer is"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(card.Back))
	return b.String()
}

// renderConfirmEnd renders the end-early confirmation dialog.
func (s *StudyScreen) renderConfirmEnd(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End the session early?"))
	b.WriteString("\n")

	var studied, total, pct int
	if s.state != nil {
		studied = s.state.TotalStudied()
		total = s.state.TotalCards
		pct = s.state.ProgressPercent()
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("You've studied %d of %d cards (%d%%). Answered cards are already saved.", studied, total, pct)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderEmpty renders the nothing-to-study terminal state.
func renderEmpty(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Bold(true).
		Render("All caught up!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("This set has no cards to study right now."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to go back."))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your cards...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
