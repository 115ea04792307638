// Package apperror is the error taxonomy shared by every domain.
// Handlers never inspect driver errors directly: services translate store
// failures into one of these kinds and the response package maps the kind
// to an HTTP status.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindStore Kind = iota
	KindValidation
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "store"
	}
}

// Error carries a client-safe Message. Err is the underlying cause and is
// only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same kind and message, so package level
// sentinels work with errors.Is even after being wrapped.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Store wraps a data access failure. The message shown to clients is fixed.
func Store(op string, err error) *Error {
	return &Error{Kind: KindStore, Message: op, Err: err}
}

// KindOf reports the kind of err. Anything that is not an *Error is treated
// as a store failure.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// MessageOf returns the client-safe message for err. Store failures never
// expose their cause.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindStore {
		return appErr.Message
	}
	return "Internal server error"
}

// Wrap leaves application errors untouched and turns anything else into a
// Store error for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Store(op, err)
}
