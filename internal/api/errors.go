package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the bearer token is missing, expired or
	// rejected. Callers should prompt for a fresh login.
	ErrUnauthorized = errors.New("unauthorized: run 'ghinho login'")

	// ErrNotFound means the requested set, card or session does not
	// exist (or is not visible to this account).
	ErrNotFound = errors.New("not found")
)

// StatusError is returned for unexpected HTTP statuses, carrying the
// backend's detail message when one was provided.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}
