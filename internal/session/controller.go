package session

// SubmitResult classifies the outcome of a free-text submission.
type SubmitResult int

const (
	// SubmitIgnored means the input was blank or the session was not
	// accepting answers; nothing changed and no network call is due.
	SubmitIgnored SubmitResult = iota
	// SubmitCorrect means the answer matched; a QualityGood submission
	// is now pending and input is locked.
	SubmitCorrect
	// SubmitIncorrect means the answer did not match; the card stays
	// presented for another try.
	SubmitIncorrect
)

// Submit grades free-text input against the current card. Blank input is
// rejected before any grading. On a match the session moves to
// CardGrading with QualityGood queued; the caller then performs the
// answer submission. On a miss the wrong-attempt counter increments, the
// input clears, and the card remains presented.
func (s *Session) Submit(input string) SubmitResult {
	if s.Phase != PhaseActive || s.CardPhase != CardPresenting {
		return SubmitIgnored
	}
	card := s.Current()
	if card == nil {
		return SubmitIgnored
	}
	if normalize(input) == "" {
		return SubmitIgnored
	}

	if Grade(input, card.Back) {
		s.Attempt.Input = input
		s.Attempt.Feedback = FeedbackCorrect
		s.CardPhase = CardGrading
		s.PendingQuality = QualityGood
		return SubmitCorrect
	}

	s.Attempt.WrongAttempts++
	s.Attempt.Feedback = FeedbackIncorrect
	s.Attempt.Input = ""
	return SubmitIncorrect
}

// CanReveal reports whether the reveal-answer action is available. It
// unlocks after RevealThreshold wrong attempts on the current card.
func (s *Session) CanReveal() bool {
	return s.Phase == PhaseActive &&
		s.CardPhase == CardPresenting &&
		s.Attempt.WrongAttempts >= RevealThreshold
}

// Reveal shows the expected answer for the current card.
func (s *Session) Reveal() bool {
	if !s.CanReveal() {
		return false
	}
	s.Attempt.Revealed = true
	s.Attempt.Feedback = FeedbackNone
	s.CardPhase = CardRevealed
	return true
}

// ContinueAfterReveal acknowledges a revealed card, queueing a
// QualityRevealed submission. This is the only path by which a card
// advances without a correctness match.
func (s *Session) ContinueAfterReveal() bool {
	if s.Phase != PhaseActive || s.CardPhase != CardRevealed {
		return false
	}
	s.CardPhase = CardGrading
	s.PendingQuality = QualityRevealed
	return true
}

// RecordAnswer folds a successful answer submission into the session
// stats and begins the advance delay. Quality at or above
// CorrectThreshold counts as correct.
func (s *Session) RecordAnswer() {
	if s.CardPhase != CardGrading {
		return
	}
	s.Stats.Studied++
	if s.PendingQuality >= CorrectThreshold {
		s.Stats.Correct++
	} else {
		s.Stats.Incorrect++
	}
	s.CardPhase = CardAdvancing
}

// SubmissionFailed unwinds an in-flight answer submission that returned
// an error. The card stays presented and no stats change; a revealed
// card stays revealed so the learner can retry the continue action.
func (s *Session) SubmissionFailed() {
	if s.CardPhase != CardGrading {
		return
	}
	if s.Attempt.Revealed {
		s.CardPhase = CardRevealed
		return
	}
	s.CardPhase = CardPresenting
	s.Attempt.Feedback = FeedbackNone
}

// Advance moves to the next card, resetting the per-card attempt state.
// When the queue is exhausted the session transitions to PhaseCompleting
// and false is returned.
func (s *Session) Advance() bool {
	if s.Phase != PhaseActive || s.CardPhase != CardAdvancing {
		return false
	}

	s.CurrentIndex++
	s.Attempt = Attempt{}
	s.PendingQuality = 0

	if s.CurrentIndex >= len(s.Cards) {
		s.Phase = PhaseCompleting
		return false
	}

	s.CardPhase = CardPresenting
	return true
}

// EndEarly forces the session into PhaseCompleting with whatever partial
// stats have accumulated. Callers confirm with the learner first.
func (s *Session) EndEarly() {
	if s.Phase != PhaseActive {
		return
	}
	s.Phase = PhaseCompleting
}

// Finish marks the session finalized after the session log has been
// updated (or the update failed; finalization never blocks on it).
func (s *Session) Finish() {
	if s.Phase != PhaseCompleting {
		return
	}
	s.Phase = PhaseDone
}
