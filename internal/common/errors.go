package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind sentinels. Services wrap these (directly or through a coded *Error)
// so handlers can map any failure to an HTTP status with errors.Is.
var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict")
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")
)

// Error is a domain error with a stable API code surfaced in the response
// envelope. It unwraps to one of the kind sentinels above.
type Error struct {
	Code string
	kind error
	msg  string
}

func NewError(code string, kind error, msg string) *Error {
	return &Error{Code: code, kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

// Coded errors enumerated by the API contract.
var (
	ErrInvalidRequest   = NewError("INVALID_REQUEST", ErrValidation, "invalid request")
	ErrUnauthenticated  = NewError("UNAUTHORIZED", ErrUnauthorized, "authentication required")
	ErrContestNotFound  = NewError("CONTEST_NOT_FOUND", ErrNotFound, "contest not found")
	ErrContestNotActive = NewError("CONTEST_NOT_ACTIVE", ErrForbidden, "contest is not active")
	ErrCreatorForbidden = NewError("FORBIDDEN", ErrForbidden, "creators cannot compete in their own contest")
	ErrNotContestOwner  = NewError("FORBIDDEN", ErrForbidden, "only the contest creator may do this")
	ErrRoleForbidden    = NewError("FORBIDDEN", ErrForbidden, "role does not permit this action")
	ErrQuestionNotFound = NewError("QUESTION_NOT_FOUND", ErrNotFound, "question not found in this contest")
	ErrProblemNotFound  = NewError("PROBLEM_NOT_FOUND", ErrNotFound, "problem not found in this contest")
	ErrAlreadySubmitted = NewError("ALREADY_SUBMITTED", ErrConflict, "answer already submitted for this question")
	ErrEmailTaken       = NewError("EMAIL_TAKEN", ErrConflict, "email is already registered")
	ErrInternal         = NewError("INTERNAL_ERROR", ErrInternalServer, "internal server error")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// CodeFromError extracts the API error code for the envelope. Anything
// without a coded error in its chain is reported as INTERNAL_ERROR; the
// underlying detail is for logs only.
func CodeFromError(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrInternal.Code
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
