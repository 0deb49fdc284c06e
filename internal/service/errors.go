package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. Handlers map these onto HTTP
// status codes; anything else is treated as a storage/internal failure.
var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrLectureNotFound = errors.New("lecture not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrQuizExists      = errors.New("a quiz already exists for this lecture")
	// ErrSessionConflict means another in_progress session won the race for
	// this (user, quiz); the client should re-fetch via start.
	ErrSessionConflict = errors.New("a quiz session is already in progress")
	// ErrSessionNotFound also covers sessions that are already closed.
	ErrSessionNotFound  = errors.New("quiz session not found or already closed")
	ErrTimeExpired      = errors.New("quiz timed out, submission not accepted after the time limit")
	ErrAttemptNotFound  = errors.New("quiz attempt not found")
	ErrProgressNotFound = errors.New("course progress not found")
	ErrNotAuthorized    = errors.New("not authorized")
)

// ValidationError marks caller mistakes: malformed ids, missing fields,
// authoring payloads that break an invariant.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
