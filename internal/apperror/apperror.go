// Package apperror defines the request-scoped error taxonomy. Every error
// a service returns is one of these kinds; the HTTP layer maps kinds to
// status codes and never leaks internal detail for storage failures.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation: caller-supplied input fails a precondition.
	KindValidation Kind = iota + 1
	// KindAuthentication: no resolvable caller identity.
	KindAuthentication
	// KindPermission: identity is valid but may not act on the resource.
	KindPermission
	// KindNotFound: the addressed resource does not exist.
	KindNotFound
	// KindConflict: the slot was taken between resolution and booking,
	// or a status transition is no longer legal.
	KindConflict
	// KindStorage: underlying persistence failure.
	KindStorage
)

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

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Permission(msg string) *Error {
	return &Error{Kind: KindPermission, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Storage wraps a persistence failure. msg names the operation that
// failed ("resolve availability"); err carries the driver detail.
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
