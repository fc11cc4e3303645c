package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so the HTTP boundary can map it
// to a stable status code without string matching.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	}
	return "INTERNAL_ERROR"
}

// Error is the single error type produced by entities and services.
// Entities only ever produce KindValidation; the service layer adds the
// rest of the taxonomy.
type Error struct {
	kind ErrorKind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() ErrorKind {
	return e.kind
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func NewBadRequestError(format string, args ...any) *Error {
	return newError(KindBadRequest, format, args...)
}

func NewUnauthorizedError(format string, args ...any) *Error {
	return newError(KindUnauthorized, format, args...)
}

func NewForbiddenError(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

func NewNotFoundError(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func NewConflictError(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

// KindOf extracts the kind of a domain error. Unknown errors report as
// internal failures.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.kind, true
	}
	return 0, false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func IsValidation(err error) bool   { return IsKind(err, KindValidation) }
func IsBadRequest(err error) bool   { return IsKind(err, KindBadRequest) }
func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }
func IsForbidden(err error) bool    { return IsKind(err, KindForbidden) }
func IsNotFound(err error) bool     { return IsKind(err, KindNotFound) }
func IsConflict(err error) bool     { return IsKind(err, KindConflict) }
