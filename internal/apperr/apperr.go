// Package apperr is the error taxonomy shared by services and handlers.
package apperr

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return 400
	case KindAuthentication:
		return 401
	case KindAuthorization:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	default:
		return 500
	}
}

// Error carries a client-safe message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) error     { return newError(KindValidation, msg) }
func Authentication(msg string) error { return newError(KindAuthentication, msg) }
func Authorization(msg string) error  { return newError(KindAuthorization, msg) }
func NotFound(msg string) error       { return newError(KindNotFound, msg) }
func Conflict(msg string) error       { return newError(KindConflict, msg) }

// Internal wraps an unexpected failure. The cause keeps a stack trace for logging,
// the message is what callers log alongside it.
func Internal(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Message: msg, Err: errors.WithStack(err)}
}

// FromDB converts a datastore error. Record-not-found becomes NotFound with notFoundMsg,
// unique violations become Conflict, everything else is Internal.
func FromDB(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return err
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}
	if IsUniqueViolation(err) {
		return &Error{Kind: KindConflict, Message: "resource already exists", Err: err}
	}
	return Internal(err, "database error")
}

// IsUniqueViolation reports whether err is a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return stderrors.Is(err, gorm.ErrDuplicatedKey)
}

// KindOf returns the kind of err; errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Status is shorthand for KindOf(err).Status().
func Status(err error) int {
	return KindOf(err).Status()
}

// Message returns the text that is safe to send to clients.
func Message(err error) string {
	var appErr *Error
	if stderrors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "An internal server error occurred"
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
