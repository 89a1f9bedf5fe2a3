package apiclient

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure coming out of the client wraps exactly one of
// these, so callers branch with errors.Is instead of sniffing status codes.
var (
	// ErrUnauthorized is a 401 from the backend: the session token is
	// missing, invalid or expired. The session layer reacts to this by
	// tearing the session down; views never render it directly.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransport covers network failures and unreachable backends.
	ErrTransport = errors.New("backend unreachable")
	// ErrBackend is any non-401 error status reported by the backend.
	ErrBackend = errors.New("backend error")
	// ErrMalformed is a success status whose body did not decode into the
	// expected shape.
	ErrMalformed = errors.New("malformed response")
)

// Error is the typed failure returned by every client call.
type Error struct {
	Kind    error  // one of the sentinels above
	Op      string // "GET /posts/42"
	Status  int    // HTTP status, 0 for transport failures
	Message string // human-readable, backend-provided when available
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %v (%d): %s", e.Op, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// UserMessage returns text safe to render to the user for err. Backend
// business-rule messages pass through verbatim; everything else falls back to
// a generic, retry-suggesting message.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch {
		case errors.Is(apiErr.Kind, ErrBackend) && apiErr.Message != "":
			return apiErr.Message
		case errors.Is(apiErr.Kind, ErrUnauthorized) && apiErr.Message != "":
			// Only the login and register views render this; resource
			// handlers expire the session on 401 before getting here.
			return apiErr.Message
		case errors.Is(apiErr.Kind, ErrTransport):
			return "Could not reach the server. Please try again."
		}
	}
	return fallback
}
