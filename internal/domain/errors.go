package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuestionNotFound indicates the referenced question does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoQuestionsAvailable is returned when a session is requested against
	// an empty question bank.
	ErrNoQuestionsAvailable = errors.New("no questions available")
	// ErrEmptyAnswerSet rejects a submission with zero answers.
	ErrEmptyAnswerSet = errors.New("answers array is required")
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken indicates a registration conflict on the unique
	// username constraint.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned for both unknown-user and bad-password
	// login failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports malformed admin input (missing text, too few
// options, no correct option).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validationf builds a ValidationError for the given field.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
