package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrCanceled marks a submission aborted by Cancel or supersession. It is
// never shown to the user; callers drop the settlement instead of
// rendering it.
var ErrCanceled = errors.New("request canceled")

// ValidationError reports a file rejected before any network I/O.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// TimeoutError reports a request aborted by the deadline timer.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %s", e.Timeout)
}

// NetworkError reports a transport-level failure. Offline is set when the
// client was flagged offline at call time.
type NetworkError struct {
	Offline bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Offline {
		return fmt.Sprintf("offline: %v", e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError reports a non-success HTTP response from the recognition
// service. Message is the server's error field when one was present and
// parseable, the HTTP status text otherwise.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, msg)
}
