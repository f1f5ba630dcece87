package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrRemote matches a response outside the 2xx range.
	ErrRemote = errors.New("remote request failed")
	// ErrUnexpectedStatus matches a 2xx response that is not the code the operation expects.
	ErrUnexpectedStatus = errors.New("unexpected success status")
)

// StatusError carries the status and raw body of a response the caller did not expect.
// Body is for server-side logs only and must not be shown to users.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: remote returned status %d", e.Op, e.StatusCode)
}

// Is lets callers tell a failed call from an odd success with errors.Is.
func (e *StatusError) Is(target error) bool {
	ok := e.StatusCode >= 200 && e.StatusCode < 300
	switch target {
	case ErrUnexpectedStatus:
		return ok
	case ErrRemote:
		return !ok
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come from a response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
