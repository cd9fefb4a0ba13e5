package session

import (
	"time"
)

// Quality scores forwarded to the answer endpoint. The backend's
// spaced-repetition algorithm consumes the full 0-5 range; locally a
// score >= CorrectThreshold counts as a correct recall.
const (
	QualityGood     = 4 // auto-submitted on a correct free-text match
	QualityRevealed = 1 // submitted when the learner gives up and reveals

	CorrectThreshold = 3

	// RevealThreshold is the number of wrong attempts before the
	// reveal-answer action becomes available.
	RevealThreshold = 2
)

// Display defaults for cards fetched without server-side scheduling state.
// Authoritative scheduling lives on the server; these exist only so the
// queue renders consistently after a restart.
const (
	DefaultEaseFactor = 2.5
	DefaultInterval   = 1
)

// Mode selects how an interrupted set is re-entered.
type Mode int

const (
	// ModeContinue preserves server scheduling state and studies due cards.
	ModeContinue Mode = iota
	// ModeRestart resets server progress and studies the full card list.
	ModeRestart
)

func (m Mode) String() string {
	if m == ModeRestart {
		return "restart"
	}
	return "continue"
}

// Phase is the lifecycle phase of one study pass.
type Phase int

const (
	PhaseChoosing   Phase = iota // waiting for the continue/restart decision
	PhaseLoading                 // fetching the card queue
	PhaseActive                  // iterating cards
	PhaseCompleting              // reporting final stats
	PhaseDone                    // session finalized
	PhaseEmpty                   // terminal: nothing to study
)

// CardPhase is the per-card sub-state while the session is active.
// Exactly one of these holds at a time; feedback, reveal and in-flight
// submission state cannot co-occur illegally.
type CardPhase int

const (
	CardPresenting CardPhase = iota // accepting free-text input
	CardGrading                     // answer submission in flight, input locked
	CardRevealed                    // expected answer shown, waiting for continue
	CardAdvancing                   // answer recorded, waiting out the UX delay
)

// Feedback is the visible judgement of the most recent attempt.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

// Card is one queue entry. Scheduling fields are opaque here: the
// controller forwards quality scores and reads them back for display only.
type Card struct {
	ID    int    `json:"id"`
	SetID int    `json:"set_id"`
	Front string `json:"front"`
	Back  string `json:"back"`

	EaseFactor     float64    `json:"ease_factor"`
	Interval       int        `json:"interval"`
	NextReviewDate *time.Time `json:"next_review_date"`
	TotalReviews   int        `json:"total_reviews"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
}

// Progress is the server-owned study progress for one set.
type Progress struct {
	SetID        int `json:"set_id"`
	TotalCards   int `json:"total_cards"`
	CardsStudied int `json:"cards_studied"`
	CardsCorrect int `json:"cards_correct"`
	StreakDays   int `json:"streak_days"`
}

// Stats accumulates per-session answer counts.
type Stats struct {
	Studied   int
	Correct   int
	Incorrect int
}

// Attempt is the ephemeral per-card answer state. It is reset whenever
// the session advances to the next card.
type Attempt struct {
	Input         string
	WrongAttempts int
	Feedback      Feedback
	Revealed      bool
}

// Session is the in-memory state of one study pass over a set. It is
// owned by a single controller instance and discarded on completion or
// abandonment; nothing here is persisted client-side.
type Session struct {
	// ID is assigned by the session log on start.
	ID    int
	SetID int

	Cards        []Card
	CurrentIndex int

	Stats Stats

	// InitialCardsStudied snapshots the server-side progress at resume
	// time so completed totals never double-count queue cards.
	InitialCardsStudied int

	// TotalCards is the full set size, used for progress display.
	TotalCards int

	Mode      Mode
	Phase     Phase
	CardPhase CardPhase
	Attempt   Attempt

	// PendingQuality is the quality score queued for the in-flight
	// answer submission while CardPhase is CardGrading.
	PendingQuality int

	StartTime time.Time
}

// NewSession creates an active session over a non-empty card queue.
// The caller registers the session with the session log first; id is the
// identifier it was assigned.
func NewSession(id, setID int, cards []Card, progress Progress, mode Mode) *Session {
	initial := 0
	if mode == ModeContinue {
		initial = progress.CardsStudied
	}

	total := progress.TotalCards
	if total == 0 {
		total = len(cards)
	}

	return &Session{
		ID:                  id,
		SetID:               setID,
		Cards:               cards,
		InitialCardsStudied: initial,
		TotalCards:          total,
		Mode:                mode,
		Phase:               PhaseActive,
		CardPhase:           CardPresenting,
		StartTime:           time.Now(),
	}
}

// NeedsModeChoice reports whether the continue/restart prompt must be
// shown before any cards load. With no prior progress there is nothing
// to resume and the choice is skipped.
func NeedsModeChoice(p Progress) bool {
	return p.CardsStudied > 0
}

// Current returns the card being presented, or nil when the queue is
// exhausted.
func (s *Session) Current() *Card {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Cards) {
		return nil
	}
	return &s.Cards[s.CurrentIndex]
}

// Remaining returns the number of cards left in the queue, including the
// current one.
func (s *Session) Remaining() int {
	if s.CurrentIndex >= len(s.Cards) {
		return 0
	}
	return len(s.Cards) - s.CurrentIndex
}

// TotalStudied returns the overall studied count for display: the resume
// snapshot plus this session's answers.
func (s *Session) TotalStudied() int {
	return s.InitialCardsStudied + s.Stats.Studied
}

// ProgressPercent returns TotalStudied over TotalCards as a 0-100 value.
func (s *Session) ProgressPercent() int {
	total := s.TotalCards
	if total == 0 {
		total = len(s.Cards)
	}
	if total == 0 {
		return 0
	}
	pct := s.TotalStudied() * 100 / total
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Duration returns the elapsed session time.
func (s *Session) Duration() time.Duration {
	return time.Since(s.StartTime)
}
