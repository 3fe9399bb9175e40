// Package apperr carries the error kinds shared by use cases and HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindServerError Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "server_error"
	}
}

// Error is a classified failure. Code is the client-facing error string.
type Error struct {
	Kind Kind
	Code string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Code
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg}
}

func BadRequest(msg string) *Error {
	return New(KindBadRequest, "bad_request", msg)
}

func Unauthorized(msg string) *Error {
	return New(KindUnauthorized, "unauthorized", msg)
}

func Forbidden(msg string) *Error {
	return New(KindForbidden, "forbidden", msg)
}

func Conflict(msg string) *Error {
	return New(KindConflict, "already_exists", msg)
}

func NotFound(msg string) *Error {
	return New(KindNotFound, "not_found", msg)
}

// Internal wraps an unexpected failure; its detail is logged, never returned to callers.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindServerError, Code: "server_error", Msg: msg, Err: err}
}

// KindOf reports the kind of err, treating unclassified errors as server errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServerError
}

// CodeOf reports the client-facing code of err.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return "server_error"
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
