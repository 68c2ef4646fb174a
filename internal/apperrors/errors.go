// Package apperrors defines the error taxonomy shared by services,
// repositories and handlers. Sentinel kinds let handlers translate a
// failure into the right HTTP status without inspecting error strings:
// validation -> 400, not found -> 404, conflict -> 409, precondition
// failed -> 412, persistence -> 500.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindValidation means the payload failed shape or required-field checks.
	// Surfaced before any write begins.
	KindValidation Kind = iota + 1
	// KindNotFound means a referenced transaction/quote/booking/sector id
	// does not exist.
	KindNotFound
	// KindConflict means a reconciliation update target vanished concurrently.
	// Callers may retry the whole operation.
	KindConflict
	// KindPrecondition means a phase transition was attempted from the wrong
	// source state.
	KindPrecondition
	// KindPersistence means the underlying store failed mid unit-of-work.
	// Treated as fatal and logged with full context.
	KindPersistence
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Precondition(format string, args ...any) error {
	return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf(format, args...)}
}

// Persistence marks a store failure; the underlying error goes into
// the formatted message.
func Persistence(format string, args ...any) error {
	return &Error{Kind: KindPersistence, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsPrecondition(err error) bool { return KindOf(err) == KindPrecondition }

// HTTPStatus maps an error to the status code handlers should write.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
