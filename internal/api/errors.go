package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the server rejected the credential (401/403).
// Callers must route this through the same path as an explicit logout.
var ErrUnauthorized = errors.New("session invalid")

// RejectionError is a well-formed error payload from the server. Its
// message is passed through to the user verbatim.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server rejected request (HTTP %d)", e.StatusCode)
}

// ResponseError indicates a response that did not match the expected
// shape, either structurally invalid JSON or a schema violation.
type ResponseError struct {
	Endpoint string
	Err      error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.Endpoint, e.Err)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// IsRejection reports whether err carries a server-provided message and
// returns that message when it does.
func IsRejection(err error) (string, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Message, true
	}
	return "", false
}
