package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindRelay
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindRelay:
		return "relay"
	default:
		return "internal"
	}
}

// Error is the error type returned by every service operation. Msg is safe
// to show to the client; Err carries the cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func validationError(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }

func conflictError(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }

func authError(msg string) error { return &Error{Kind: KindAuth, Msg: msg} }

func relayError(msg string, err error) error { return &Error{Kind: KindRelay, Msg: msg, Err: err} }

func internalError(err error) error {
	return &Error{Kind: KindInternal, Msg: MsgInternal, Err: err}
}
