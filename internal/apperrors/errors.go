// Package apperrors holds the client's error taxonomy. Validation errors are
// rejected before any network effect; request errors carry the server's text
// verbatim.
package apperrors

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrMissingName          = errors.New("player name is required")
	ErrMissingRoom          = errors.New("no room selected")
	ErrInvalidRoomReference = errors.New("not a valid room id or invite link")
	ErrActionInFlight       = errors.New("a request is already in flight")
)

// RequestError is a non-success response from the room server.
type RequestError struct {
	Op      string // "create room", "join room"
	Status  int
	Message string // server-provided body, verbatim
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// IsValidation reports whether err was rejected client-side, before any
// request went out.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingRoom) ||
		errors.Is(err, ErrInvalidRoomReference) ||
		errors.Is(err, ErrActionInFlight)
}
