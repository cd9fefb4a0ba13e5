package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/vuminh/ghinho/internal/api"
	"github.com/vuminh/ghinho/internal/events"
	"github.com/vuminh/ghinho/internal/router"
	"github.com/vuminh/ghinho/internal/screen"
	sess "github.com/vuminh/ghinho/internal/session"
	"github.com/vuminh/ghinho/internal/store"
	"github.com/vuminh/ghinho/internal/ui/components"
	"github.com/vuminh/ghinho/internal/ui/layout"
)

// Backend is the slice of the API client the study flow uses.
type Backend interface {
	Progress(ctx context.Context, setID int) (sess.Progress, error)
	StartSession(ctx context.Context, setID int) (int, error)
	SubmitAnswer(ctx context.Context, cardID, quality int) (api.AnswerUpdate, error)
	CompleteSession(ctx context.Context, sessionID int, result api.SessionResult) error

	sess.CardSource
}

var _ Backend = (*api.Client)(nil)

// StudyScreen implements screen.Screen for one study pass over a set.
type StudyScreen struct {
	client  Backend
	bus     *events.Bus
	history store.HistoryRepo
	set     api.Set

	correctDelay time.Duration
	advanceDelay time.Duration

	phase    sess.Phase
	mode     sess.Mode
	progress sess.Progress
	queue    []sess.Card
	state    *sess.Session

	input    components.TextInput
	modeMenu components.Menu

	// lastUpdate holds the scheduling echo of the most recent accepted
	// answer, shown while waiting out the advance delay.
	lastUpdate *api.AnswerUpdate

	saveErr    string
	confirmEnd bool
	endedEarly bool
	errMsg     string

	// gen invalidates delayed messages scheduled for a card that is no
	// longer current.
	gen int
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StreakProvider = (*StudyScreen)(nil)

// New creates a new StudyScreen for the given set.
func New(client Backend, bus *events.Bus, history store.HistoryRepo, set api.Set, correctDelay, advanceDelay time.Duration) *StudyScreen {
	return &StudyScreen{
		client:       client,
		bus:          bus,
		history:      history,
		set:          set,
		correctDelay: correctDelay,
		advanceDelay: advanceDelay,
		phase:        sess.PhaseLoading,
		input:        components.NewTextInput("Type your answer...", 0),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return tea.Batch(
		s.loadProgress(),
		s.input.Init(),
	)
}

func (s *StudyScreen) Title() string {
	return s.set.Title
}

// StreakDays reports the set's study streak for the header bar.
func (s *StudyScreen) StreakDays() int {
	return s.progress.StreakDays
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" || s.phase == sess.PhaseEmpty {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.confirmEnd {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.phase {
	case sess.PhaseChoosing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Select"},
			{Key: "↑/↓", Description: "Choose"},
		}
	case sess.PhaseActive:
		switch s.state.CardPhase {
		case sess.CardPresenting:
			hints := []layout.KeyHint{
				{Key: "Enter", Description: "Check"},
				{Key: "Esc", Description: "End"},
			}
			if s.state.CanReveal() {
				hints = append([]layout.KeyHint{{Key: "Tab", Description: "Show answer"}}, hints...)
			}
			return hints
		case sess.CardRevealed:
			return []layout.KeyHint{
				{Key: "Enter", Description: "Continue"},
				{Key: "Esc", Description: "End"},
			}
		}
	}
	return nil
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		return s.handleProgressLoaded(msg)

	case modeChosenMsg:
		s.mode = msg.Mode
		s.phase = sess.PhaseLoading
		return s, s.loadQueue(msg.Mode)

	case queueLoadedMsg:
		return s.handleQueueLoaded(msg)

	case sessionStartedMsg:
		return s.handleSessionStarted(msg)

	case autoSubmitMsg:
		if msg.Gen != s.gen || s.state == nil || s.state.CardPhase != sess.CardGrading {
			return s, nil
		}
		return s, s.submitAnswer()

	case answerSavedMsg:
		return s.handleAnswerSaved(msg)

	case progressRefreshedMsg:
		s.progress = msg.Progress
		return s, nil

	case advanceMsg:
		return s.handleAdvance(msg)

	case sessionClosedMsg:
		return s.handleSessionClosed()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward to input while a card is accepting answers.
	if s.state != nil && s.phase == sess.PhaseActive && s.state.CardPhase == sess.CardPresenting && !s.confirmEnd {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *StudyScreen) handleProgressLoaded(msg progressLoadedMsg) (screen.Screen, tea.Cmd) {
	// A failed progress fetch degrades to a fresh start; the resume
	// prompt only matters when prior progress is known to exist.
	s.progress = msg.Progress

	if msg.Err == nil && sess.NeedsModeChoice(msg.Progress) {
		s.phase = sess.PhaseChoosing
		s.modeMenu = components.NewMenu([]components.MenuItem{
			{
				Label: "Continue where I left off",
				Hint:  fmt.Sprintf("%d of %d cards studied", msg.Progress.CardsStudied, msg.Progress.TotalCards),
				Action: func() tea.Cmd {
					return func() tea.Msg { return modeChosenMsg{Mode: sess.ModeContinue} }
				},
			},
			{
				Label: "Start over",
				Hint:  "reset progress and study every card",
				Action: func() tea.Cmd {
					return func() tea.Msg { return modeChosenMsg{Mode: sess.ModeRestart} }
				},
			},
		})
		return s, nil
	}

	s.mode = sess.ModeContinue
	return s, s.loadQueue(sess.ModeContinue)
}

func (s *StudyScreen) handleQueueLoaded(msg queueLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if len(msg.Cards) == 0 {
		s.phase = sess.PhaseEmpty
		return s, nil
	}
	s.queue = msg.Cards
	return s, s.startSession()
}

func (s *StudyScreen) handleSessionStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	// The session log is best effort: studying proceeds without a
	// server-side record when registration fails.
	id := msg.ID
	if msg.Err != nil {
		id = 0
	}

	s.state = sess.NewSession(id, s.set.ID, s.queue, s.progress, s.mode)
	s.phase = sess.PhaseActive
	s.input.Reset()
	return s, s.input.Init()
}

func (s *StudyScreen) handleAnswerSaved(msg answerSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen || s.state == nil || s.state.CardPhase != sess.CardGrading {
		return s, nil
	}

	if msg.Err != nil {
		s.state.SubmissionFailed()
		s.saveErr = "Couldn't save the answer. Check the connection and try again."
		return s, nil
	}

	s.saveErr = ""
	upd := msg.Update
	s.lastUpdate = &upd
	s.state.RecordAnswer()

	if s.bus != nil {
		s.bus.Publish(events.ProgressUpdated{SetID: s.set.ID})
	}

	return s, tea.Batch(
		s.refreshProgress(),
		tick(s.advanceDelay, advanceMsg{Gen: s.gen}),
	)
}

func (s *StudyScreen) handleAdvance(msg advanceMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen || s.state == nil || s.state.CardPhase != sess.CardAdvancing {
		return s, nil
	}

	s.gen++
	s.lastUpdate = nil
	s.input.Reset()

	if !s.state.Advance() {
		s.phase = sess.PhaseCompleting
		return s, s.finishSession()
	}
	return s, s.input.Init()
}

func (s *StudyScreen) handleSessionClosed() (screen.Screen, tea.Cmd) {
	st := s.state
	st.Finish()
	s.phase = sess.PhaseDone

	sum := newSummary(s.set.Title, st, s.endedEarly)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: newSummaryScreen(sum)}
	}
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmEnd {
		switch key {
		case "y", "Y":
			s.confirmEnd = false
			return s, s.endSession()
		case "n", "N", "esc":
			s.confirmEnd = false
			return s, nil
		}
		return s, nil
	}

	switch s.phase {
	case sess.PhaseChoosing:
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.modeMenu, cmd = s.modeMenu.Update(msg)
		return s, cmd

	case sess.PhaseEmpty:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case sess.PhaseActive:
		return s.handleActiveKey(msg)
	}

	return s, nil
}

func (s *StudyScreen) handleActiveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.state.CardPhase {
	case sess.CardPresenting:
		switch key {
		case "esc":
			s.confirmEnd = true
			return s, nil
		case "enter":
			return s.submit()
		case "tab":
			if s.state.Reveal() {
				s.saveErr = ""
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case sess.CardRevealed:
		switch key {
		case "esc":
			s.confirmEnd = true
			return s, nil
		case "enter":
			if s.state.ContinueAfterReveal() {
				return s, s.submitAnswer()
			}
		}
	}

	// Grading and advancing are timer driven; keys are ignored.
	return s, nil
}

// submit grades the typed answer locally. A correct match locks input
// and schedules the quality submission after the feedback delay.
func (s *StudyScreen) submit() (screen.Screen, tea.Cmd) {
	switch s.state.Submit(s.input.Value()) {
	case sess.SubmitCorrect:
		s.saveErr = ""
		return s, tick(s.correctDelay, autoSubmitMsg{Gen: s.gen})
	case sess.SubmitIncorrect:
		s.input.Reset()
	}
	return s, nil
}

// endSession finalizes early with whatever stats have accumulated.
func (s *StudyScreen) endSession() tea.Cmd {
	s.gen++
	s.endedEarly = true
	s.state.EndEarly()
	s.phase = sess.PhaseCompleting
	return s.finishSession()
}

// loadProgress fetches the server-side progress for the set.
func (s *StudyScreen) loadProgress() tea.Cmd {
	setID := s.set.ID
	return func() tea.Msg {
		p, err := s.client.Progress(context.Background(), setID)
		return progressLoadedMsg{Progress: p, Err: err}
	}
}

// loadQueue builds the card queue for the chosen mode.
func (s *StudyScreen) loadQueue(mode sess.Mode) tea.Cmd {
	setID := s.set.ID
	return func() tea.Msg {
		cards, err := sess.LoadQueue(context.Background(), s.client, setID, mode)
		return queueLoadedMsg{Cards: cards, Err: err}
	}
}

// startSession registers the session with the server-side session log.
func (s *StudyScreen) startSession() tea.Cmd {
	setID := s.set.ID
	return func() tea.Msg {
		id, err := s.client.StartSession(context.Background(), setID)
		return sessionStartedMsg{ID: id, Err: err}
	}
}

// submitAnswer pushes the pending quality score for the current card.
func (s *StudyScreen) submitAnswer() tea.Cmd {
	card := s.state.Current()
	quality := s.state.PendingQuality
	gen := s.gen
	if card == nil {
		return nil
	}
	cardID := card.ID
	return func() tea.Msg {
		upd, err := s.client.SubmitAnswer(context.Background(), cardID, quality)
		return answerSavedMsg{Gen: gen, Update: upd, Err: err}
	}
}

// refreshProgress re-fetches progress after an accepted answer so the
// header numbers track the server.
func (s *StudyScreen) refreshProgress() tea.Cmd {
	setID := s.set.ID
	return func() tea.Msg {
		p, err := s.client.Progress(context.Background(), setID)
		if err != nil {
			return nil
		}
		return progressRefreshedMsg{Progress: p}
	}
}

// finishSession reports the final counts to the session log and appends
// the local history record.
func (s *StudyScreen) finishSession() tea.Cmd {
	st := s.state
	setID := s.set.ID
	setTitle := s.set.Title
	mode := s.mode
	return func() tea.Msg {
		ctx := context.Background()
		dur := st.Duration()

		var closeErr error
		if st.ID != 0 {
			closeErr = s.client.CompleteSession(ctx, st.ID, api.SessionResult{
				CardsStudied:    st.Stats.Studied,
				CardsCorrect:    st.Stats.Correct,
				CardsIncorrect:  st.Stats.Incorrect,
				DurationMinutes: int(dur.Minutes()),
			})
		}

		if s.history != nil {
			histErr := s.history.Append(ctx, store.SessionRecord{
				ID:             uuid.New().String(),
				ServerID:       st.ID,
				SetID:          setID,
				SetTitle:       setTitle,
				Mode:           mode.String(),
				CardsStudied:   st.Stats.Studied,
				CardsCorrect:   st.Stats.Correct,
				CardsIncorrect: st.Stats.Incorrect,
				DurationSecs:   int(dur.Seconds()),
				CompletedAt:    time.Now(),
			})
			if histErr != nil {
				slog.Warn("session history write failed", "set_id", setID, "error", histErr)
			}
		}

		if s.bus != nil {
			s.bus.Publish(events.ProgressUpdated{SetID: setID})
		}

		return sessionClosedMsg{Err: closeErr}
	}
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
