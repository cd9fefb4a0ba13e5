// Package api is the HTTP client for the Thẻ Ghi Nhớ backend: the
// progress store (cards, due lists, answers, resets) and the session log
// (session start/end, history).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vuminh/ghinho/internal/session"
)

// DefaultTimeout bounds a single API call including connection setup.
const DefaultTimeout = 15 * time.Second

// Client talks to one backend instance on behalf of one account.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithLogger sets the logger for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a bearer token. The token is not
// stored on the client; callers persist it and construct a new client.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	var tok Token
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Username: username, Password: password}, &tok)
	if err != nil {
		return Token{}, fmt.Errorf("login: %w", err)
	}
	return tok, nil
}

// Sets returns the sets visible to this account.
func (c *Client) Sets(ctx context.Context) ([]Set, error) {
	var sets []Set
	if err := c.do(ctx, http.MethodGet, "/api/flashcards/sets", nil, &sets); err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return sets, nil
}

// Set returns one set's metadata.
func (c *Client) Set(ctx context.Context, setID int) (*Set, error) {
	var set Set
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/flashcards/sets/%d", setID), nil, &set); err != nil {
		return nil, fmt.Errorf("get set %d: %w", setID, err)
	}
	return &set, nil
}

// Cards returns the full card list for a set, without scheduling state.
func (c *Client) Cards(ctx context.Context, setID int) ([]session.Card, error) {
	var cards []session.Card
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/flashcards/sets/%d/cards", setID), nil, &cards); err != nil {
		return nil, fmt.Errorf("get cards for set %d: %w", setID, err)
	}
	return cards, nil
}

// DueCards returns the cards due for review in a set, with the
// server-owned scheduling state attached. An empty list is a normal
// result, not an error.
func (c *Client) DueCards(ctx context.Context, setID int) ([]session.Card, error) {
	var cards []session.Card
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/study/sets/%d/due", setID), nil, &cards); err != nil {
		return nil, fmt.Errorf("get due cards for set %d: %w", setID, err)
	}
	return cards, nil
}

// Progress returns the study progress for a set. A set that was never
// studied yields a zero Progress, not an error.
func (c *Client) Progress(ctx context.Context, setID int) (session.Progress, error) {
	var resp progressResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/study/progress/%d", setID), nil, &resp)
	if err != nil {
		if isNotFound(err) {
			return session.Progress{SetID: setID}, nil
		}
		return session.Progress{}, fmt.Errorf("get progress for set %d: %w", setID, err)
	}
	return resp.toProgress(setID), nil
}

// ResetProgress clears the server-side study progress and scheduling
// state for a set.
func (c *Client) ResetProgress(ctx context.Context, setID int) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/study/sets/%d/reset", setID), nil, nil); err != nil {
		return fmt.Errorf("reset progress for set %d: %w", setID, err)
	}
	return nil
}

// StartSession registers a session start with the session log and
// returns the assigned session id.
func (c *Client) StartSession(ctx context.Context, setID int) (int, error) {
	var rec SessionRecord
	if err := c.do(ctx, http.MethodPost, "/api/study/sessions", startSessionRequest{SetID: setID}, &rec); err != nil {
		return 0, fmt.Errorf("start session for set %d: %w", setID, err)
	}
	return rec.ID, nil
}

// SubmitAnswer forwards one quality score for one card. The server
// updates its spaced-repetition state and echoes back the new scheduling
// fields.
func (c *Client) SubmitAnswer(ctx context.Context, cardID, quality int) (AnswerUpdate, error) {
	var upd AnswerUpdate
	if err := c.do(ctx, http.MethodPost, "/api/study/answer", answerRequest{FlashcardID: cardID, Quality: quality}, &upd); err != nil {
		return AnswerUpdate{}, fmt.Errorf("submit answer for card %d: %w", cardID, err)
	}
	return upd, nil
}

// CompleteSession reports a session's final aggregate counts.
func (c *Client) CompleteSession(ctx context.Context, sessionID int, result SessionResult) error {
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/study/sessions/%d", sessionID), result, nil); err != nil {
		return fmt.Errorf("complete session %d: %w", sessionID, err)
	}
	return nil
}

// Sessions returns this account's session history, most recent first.
func (c *Client) Sessions(ctx context.Context) ([]SessionRecord, error) {
	var recs []SessionRecord
	if err := c.do(ctx, http.MethodGet, "/api/study/sessions", nil, &recs); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return recs, nil
}

// do performs one JSON round trip. A non-nil body is encoded as the
// request payload; a non-nil out receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "err", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := statusError(resp)
		c.logger.Warn("request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return err
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps an error response onto the package's error taxonomy,
// pulling the FastAPI-style {"detail": ...} message when present.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	var body struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		if json.Unmarshal(raw, &body) == nil {
			detail = body.Detail
		}
	}
	return &StatusError{Code: resp.StatusCode, Detail: detail}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
