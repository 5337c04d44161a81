package finance

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures so callers can branch on the
// kind instead of matching message text.
type ErrorKind string

const (
	// ErrInvalidInput marks analyses rejected because of inconsistent input
	ErrInvalidInput ErrorKind = "invalid_input"
	// ErrNoData marks computations that had no data to work with
	ErrNoData ErrorKind = "no_data"
)

// Error is a tagged computation failure
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a finance error, or "" for other errors
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
