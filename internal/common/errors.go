package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("could not validate credentials")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("resource conflict") // e.g., email already registered
	ErrInternalServer = errors.New("internal server error")

	// Attendance-domain failures. The engine translates a storage
	// uniqueness violation on (user_id, date) into ErrAlreadyMarked so a
	// lost check-then-act race reads the same as the explicit check.
	ErrAlreadyMarked  = errors.New("attendance already marked today")
	ErrWindowClosed   = errors.New("attendance closed for today")
	ErrLocationDenied = errors.New("attendance allowed only on the school network")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid reset token")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
// Duplicates (email taken, already marked) are reported as 400, not 409:
// that is the wire contract this API has always had.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrLocationDenied) || errors.Is(err, ErrWindowClosed) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) || errors.Is(err, ErrAlreadyMarked) ||
		errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidResetToken) {
		return http.StatusBadRequest
	}

	// Uniqueness violations that escaped repository translation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
