package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindInsufficientStock
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindNotFound:
		return "NotFound"
	case KindInsufficientStock:
		return "InsufficientStock"
	case KindConflict:
		return "Conflict"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	default:
		return "Internal"
	}
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error returned by services.
type Error struct {
	parent  error
	kind    Kind
	code    string
	msg     string
	details []FieldError
}

// New initializes an Error.
//
// code example: PRODUCT_NOT_FOUND
func New(kind Kind, code, msg string) *Error {
	return &Error{kind: kind, code: code, msg: msg}
}

func (e *Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("Code=%s, Msg=%s, Parent=(%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("Code=%s, Msg=%s", e.code, e.msg)
}

// Is reports whether target is an *Error with the same code, so predefined
// errors keep matching after WrapParent or Msgf.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code
}

func (e *Error) Unwrap() error { return e.parent }

func (e *Error) Kind() Kind { return e.kind }
func (e *Error) Code() string { return e.code }
func (e *Error) Msg() string { return e.msg }
func (e *Error) Details() []FieldError { return e.details }
func (e *Error) Parent() error { return e.parent }

// WrapParent returns a copy of e with an underlying cause attached.
func (e *Error) WrapParent(parent error) *Error {
	if parent == nil {
		return e
	}
	c := *e
	c.parent = parent
	return &c
}

// Msgf returns a copy of e with a formatted message.
func (e *Error) Msgf(format string, args ...any) *Error {
	c := *e
	c.msg = fmt.Sprintf(format, args...)
	return &c
}

// WithDetails returns a copy of e carrying per-field details.
func (e *Error) WithDetails(details ...FieldError) *Error {
	c := *e
	c.details = append([]FieldError(nil), details...)
	return &c
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindInternal
}

func NewInvalidArgument(code, msg string) *Error {
	return New(KindInvalidArgument, code, msg)
}

func NewNotFound(code, msg string) *Error {
	return New(KindNotFound, code, msg)
}

func NewConflict(code, msg string) *Error {
	return New(KindConflict, code, msg)
}

func NewUnauthorized(code, msg string) *Error {
	return New(KindUnauthorized, code, msg)
}

func NewForbidden(code, msg string) *Error {
	return New(KindForbidden, code, msg)
}
