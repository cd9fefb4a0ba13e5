package api

import (
	"time"

	"github.com/vuminh/ghinho/internal/session"
)

// Set is a flashcard set as returned by the backend.
type Set struct {
	ID            int        `json:"id"`
	OwnerID       int        `json:"owner_id"`
	OwnerUsername string     `json:"owner_username"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	IsPublic      bool       `json:"is_public"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// Token is the bearer credential returned by the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SessionRecord is one study session as reported by the session log.
type SessionRecord struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	SetID           int        `json:"set_id"`
	CardsStudied    int        `json:"cards_studied"`
	CardsCorrect    int        `json:"cards_correct"`
	CardsIncorrect  int        `json:"cards_incorrect"`
	DurationMinutes int        `json:"duration_minutes"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
}

// SessionResult carries the aggregate counts reported when a session
// finishes.
type SessionResult struct {
	CardsStudied    int `json:"cards_studied"`
	CardsCorrect    int `json:"cards_correct"`
	CardsIncorrect  int `json:"cards_incorrect"`
	DurationMinutes int `json:"duration_minutes"`
}

// AnswerUpdate is the scheduling state echoed back after an answer
// submission. The client reads it for display only.
type AnswerUpdate struct {
	Message        string     `json:"message"`
	EaseFactor     float64    `json:"ease_factor"`
	Interval       int        `json:"interval"`
	NextReviewDate *time.Time `json:"next_review_date"`
}

// NextReviewDays converts the updated next review date into a whole-day
// display value, clamped at zero.
func (u AnswerUpdate) NextReviewDays(now time.Time) int {
	if u.NextReviewDate == nil {
		return 0
	}
	days := int((u.NextReviewDate.Sub(now) + 23*time.Hour) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

// wire shapes for request bodies

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type answerRequest struct {
	FlashcardID int `json:"flashcard_id"`
	Quality     int `json:"quality"`
}

type startSessionRequest struct {
	SetID int `json:"set_id"`
}

// progressResponse tolerates the two shapes the progress endpoint has
// shipped with; cards_to_review-era payloads map onto the studied count.
type progressResponse struct {
	SetID        int `json:"set_id"`
	TotalCards   int `json:"total_cards"`
	CardsStudied int `json:"cards_studied"`
	CardsCorrect int `json:"cards_correct"`
	StreakDays   int `json:"streak_days"`
}

func (p progressResponse) toProgress(setID int) session.Progress {
	if p.SetID == 0 {
		p.SetID = setID
	}
	return session.Progress{
		SetID:        p.SetID,
		TotalCards:   p.TotalCards,
		CardsStudied: p.CardsStudied,
		CardsCorrect: p.CardsCorrect,
		StreakDays:   p.StreakDays,
	}
}
