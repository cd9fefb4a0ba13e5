package study

import (
	"github.com/vuminh/ghinho/internal/api"
	sess "github.com/vuminh/ghinho/internal/session"
)

// progressLoadedMsg is sent when the initial progress fetch completes.
type progressLoadedMsg struct {
	Progress sess.Progress
	Err      error
}

// modeChosenMsg is sent when the learner picks continue or restart.
type modeChosenMsg struct {
	Mode sess.Mode
}

// queueLoadedMsg is sent when the card queue has been built.
type queueLoadedMsg struct {
	Cards []sess.Card
	Err   error
}

// sessionStartedMsg is sent when the session log registration completes.
type sessionStartedMsg struct {
	ID  int
	Err error
}

// autoSubmitMsg fires after the correct-feedback delay to push the
// pending answer to the server.
type autoSubmitMsg struct {
	Gen int
}

// answerSavedMsg is sent when an answer submission returns.
type answerSavedMsg struct {
	Gen    int
	Update api.AnswerUpdate
	Err    error
}

// progressRefreshedMsg carries re-fetched progress after an accepted
// answer.
type progressRefreshedMsg struct {
	Progress sess.Progress
}

// advanceMsg fires after the post-answer delay to move to the next card.
type advanceMsg struct {
	Gen int
}

// sessionClosedMsg is sent when the completion report has been handled.
type sessionClosedMsg struct {
	Err error
}
