package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SessionRecord is one completed study pass as recorded locally.
type SessionRecord struct {
	// ID is a client-generated UUID; ServerID is the session log's id
	// when the start call succeeded (0 otherwise).
	ID             string    `db:"id"`
	ServerID       int       `db:"server_id"`
	SetID          int       `db:"set_id"`
	SetTitle       string    `db:"set_title"`
	Mode           string    `db:"mode"`
	CardsStudied   int       `db:"cards_studied"`
	CardsCorrect   int       `db:"cards_correct"`
	CardsIncorrect int       `db:"cards_incorrect"`
	DurationSecs   int       `db:"duration_secs"`
	CompletedAt    time.Time `db:"completed_at"`
}

// Accuracy returns correct-over-studied as a 0-100 value.
func (r SessionRecord) Accuracy() int {
	if r.CardsStudied == 0 {
		return 0
	}
	return r.CardsCorrect * 100 / r.CardsStudied
}

// HistoryRepo manages the local session history.
type HistoryRepo interface {
	// Append records a completed session.
	Append(ctx context.Context, rec SessionRecord) error

	// Recent returns up to limit sessions, most recent first.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)
}

type historyRepo struct {
	db *sqlx.DB
}

func (r *historyRepo) Append(ctx context.Context, rec SessionRecord) error {
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO session_history (
			id, server_id, set_id, set_title, mode,
			cards_studied, cards_correct, cards_incorrect,
			duration_secs, completed_at
		) VALUES (
			:id, :server_id, :set_id, :set_title, :mode,
			:cards_studied, :cards_correct, :cards_incorrect,
			:duration_secs, :completed_at
		)`, rec)
	if err != nil {
		return fmt.Errorf("append session history: %w", err)
	}
	return nil
}

func (r *historyRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var recs []SessionRecord
	err := r.db.SelectContext(ctx, &recs, `
		SELECT * FROM session_history
		ORDER BY completed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query session history: %w", err)
	}
	return recs, nil
}
