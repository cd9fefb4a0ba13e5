package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAnswer(t *testing.T) {
	next := time.Now().Add(72 * time.Hour).UTC()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/study/answer", r.URL.Path)
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))

		var body struct {
			FlashcardID int `json:"flashcard_id"`
			Quality     int `json:"quality"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 11, body.FlashcardID)
		assert.Equal(t, 4, body.Quality)

		json.NewEncoder(w).Encode(map[string]any{
			"message":          "Answer recorded",
			"ease_factor":      2.6,
			"interval":         3,
			"next_review_date": next.Format(time.RFC3339),
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok123"))
	upd, err := c.SubmitAnswer(context.Background(), 11, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.6, upd.EaseFactor)
	assert.Equal(t, 3, upd.Interval)
	require.NotNil(t, upd.NextReviewDate)
}

func TestProgress_NotStudiedMapsToZeroProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"no progress"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.Progress(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, p.SetID)
	assert.Zero(t, p.CardsStudied)
}

func TestProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/study/progress/7", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"total_cards":   10,
			"cards_studied": 3,
			"cards_correct": 2,
			"streak_days":   5,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.Progress(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 10, p.TotalCards)
	assert.Equal(t, 3, p.CardsStudied)
	assert.Equal(t, 5, p.StreakDays)
	assert.Equal(t, 7, p.SetID)
}

func TestDueCards_EmptyListIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/study/sets/7/due", r.URL.Path)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	cards, err := c.DueCards(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestStartAndCompleteSession(t *testing.T) {
	var completed struct {
		CardsStudied    int `json:"cards_studied"`
		CardsCorrect    int `json:"cards_correct"`
		CardsIncorrect  int `json:"cards_incorrect"`
		DurationMinutes int `json:"duration_minutes"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/study/sessions":
			json.NewEncoder(w).Encode(map[string]any{"id": 99, "set_id": 7, "started_at": time.Now().UTC()})
		case r.Method == http.MethodPut && r.URL.Path == "/api/study/sessions/99":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&completed))
			json.NewEncoder(w).Encode(map[string]any{"id": 99})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	id, err := c.StartSession(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 99, id)

	err = c.CompleteSession(context.Background(), id, SessionResult{
		CardsStudied:   3,
		CardsCorrect:   2,
		CardsIncorrect: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, completed.CardsStudied)
	assert.Equal(t, 2, completed.CardsCorrect)
	assert.Equal(t, 1, completed.CardsIncorrect)
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Could not validate credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Sets(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestStatusErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Bộ thẻ này đang chờ admin duyệt"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SubmitAnswer(context.Background(), 1, 4)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.Contains(t, se.Detail, "chờ admin duyệt")
}

func TestNextReviewDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	in3 := now.Add(72 * time.Hour)
	past := now.Add(-24 * time.Hour)

	assert.Equal(t, 3, AnswerUpdate{NextReviewDate: &in3}.NextReviewDays(now))
	assert.Equal(t, 0, AnswerUpdate{NextReviewDate: &past}.NextReviewDays(now))
	assert.Equal(t, 0, AnswerUpdate{}.NextReviewDays(now))
}
