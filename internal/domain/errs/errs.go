// Package errs defines the error taxonomy shared by every domain package.
package errs

import "errors"

// Kind is a machine-readable error category.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindPermission   Kind = "permission"
	KindPersistence  Kind = "persistence"
	KindInvalidState Kind = "invalid_state"
	KindConflict     Kind = "conflict"
)

// Error is the domain error type. Two *Error values match under errors.Is
// when they are the same value, or when the target carries no message and
// the kinds agree (see the kind markers below).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message != "" {
		return e.Message + ": " + e.Cause.Error()
	}
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e == t {
		return true
	}
	return t.Message == "" && t.Cause == nil && e.Kind == t.Kind
}

// Kind markers: errors.Is(err, errs.NotFound) matches any not-found error.
var (
	Validation   = &Error{Kind: KindValidation}
	NotFound     = &Error{Kind: KindNotFound}
	Permission   = &Error{Kind: KindPermission}
	Persistence  = &Error{Kind: KindPersistence}
	InvalidState = &Error{Kind: KindInvalidState}
	Conflict     = &Error{Kind: KindConflict}
)

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func NewValidation(msg string) *Error   { return New(KindValidation, msg) }
func NewPermission(msg string) *Error   { return New(KindPermission, msg) }
func NewInvalidState(msg string) *Error { return New(KindInvalidState, msg) }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsDomain reports whether err carries a domain classification.
func IsDomain(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// AsPersistence classifies a bare infrastructure error as a persistence
// failure; domain errors pass through unchanged.
func AsPersistence(msg string, err error) error {
	if err == nil || IsDomain(err) {
		return err
	}
	return Wrap(KindPersistence, msg, err)
}
