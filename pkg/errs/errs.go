// Package errs is the closed set of failure kinds the services report.
// Callers branch on Kind, never on message text.
package errs

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindUnauthorized
	KindConflict
	// KindInvariant means stored history is inconsistent, e.g. two open
	// versions of one entity. The surrounding transaction must abort.
	KindInvariant
	// KindWriteFailed means a mutating statement touched fewer rows than required.
	KindWriteFailed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindInvariant:
		return "invariant_violation"
	case KindWriteFailed:
		return "write_failed"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	// Code is the stable string returned to clients, e.g. INVALID_COLOR_NAME.
	Code   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Code
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and code, so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

func New(kind Kind, code string) *Error {
	return &Error{Kind: kind, Code: code}
}

func NotFound(code string) *Error {
	return New(KindNotFound, code)
}

func Invalid(code string) *Error {
	return New(KindInvalid, code)
}

func Unauthorized(code string) *Error {
	return New(KindUnauthorized, code)
}

func Conflict(code string) *Error {
	return New(KindConflict, code)
}

func Invariant(format string, args ...any) *Error {
	return &Error{Kind: KindInvariant, Code: "INVARIANT_VIOLATION", Detail: fmt.Sprintf(format, args...)}
}

func WriteFailed(format string, args ...any) *Error {
	return &Error{Kind: KindWriteFailed, Code: "QUERY_FAILED", Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a copy of e.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// Withf attaches a detail message to a copy of e.
func (e *Error) Withf(format string, args ...any) *Error {
	c := *e
	c.Detail = fmt.Sprintf(format, args...)
	return &c
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
