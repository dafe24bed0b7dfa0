package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable classification of an externally visible failure.
type Kind string

const (
	NotFound   Kind = "not_found"
	Validation Kind = "validation"
	Forbidden  Kind = "forbidden"
	Conflict   Kind = "conflict"
	Unexpected Kind = "unexpected"
)

// Error carries a stable kind and a human-readable message. The wrapped cause
// is kept for logs and never serialized to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, defaulting to Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}
