package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateUsername  = errors.New("Username already exists")
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrUnknownKind        = errors.New("unknown record kind")
)

// Validation failure kinds
const (
	KindMissingFields   = "missing_fields"
	KindNotNumeric      = "not_numeric"
	KindTooFewOptions   = "too_few_options"
	KindAnswerMismatch  = "answer_mismatch"
	KindInvalidPassword = "invalid_password"
)

// User facing validation messages
const (
	MsgAllFieldsRequired = "All fields are required!"
	MsgTooFewOptions     = "At least two options are required!"
	MsgAnswerMismatch    = "Correct answer must match one of the option letters!"
)

// ValidationError rejects a whole submission. Message is shown to the user.
// Details maps each offending field to its own message when known.
type ValidationError struct {
	Kind    string
	Field   string
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// AsValidationError unwraps err into a *ValidationError
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func missingFields() *ValidationError {
	return &ValidationError{Kind: KindMissingFields, Message: MsgAllFieldsRequired}
}

func notNumeric(field string) *ValidationError {
	return &ValidationError{
		Kind:    KindNotNumeric,
		Field:   field,
		Message: fmt.Sprintf("%s must be a whole number!", field),
	}
}

func invalidPassword(message string) *ValidationError {
	return &ValidationError{Kind: KindInvalidPassword, Field: "password", Message: message}
}
