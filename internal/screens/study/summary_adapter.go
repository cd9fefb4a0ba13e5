package study

import (
	"github.com/vuminh/ghinho/internal/screen"
	"github.com/vuminh/ghinho/internal/screens/summary"
	sess "github.com/vuminh/ghinho/internal/session"
)

// newSummary folds the finished session into summary data.
func newSummary(setTitle string, st *sess.Session, endedEarly bool) summary.Summary {
	return summary.Summary{
		SetTitle:     setTitle,
		Stats:        st.Stats,
		TotalStudied: st.TotalStudied(),
		TotalCards:   st.TotalCards,
		Percent:      st.ProgressPercent(),
		Duration:     st.Duration(),
		EndedEarly:   endedEarly,
	}
}

// newSummaryScreen creates a summary screen from session data.
func newSummaryScreen(sum summary.Summary) screen.Screen {
	return summary.New(sum)
}
