package scheduling

import (
	"errors"
	"fmt"
)

// Error codes carried by EngineError.
const (
	CodeInvalidInput = "invalidInput"
	CodeEngine       = "engineError"
)

// EngineError marks a failure inside the engine, as opposed to business
// unavailability (which travels in AvailabilityResult). The code separates
// caller mistakes from infrastructure faults.
type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &EngineError{Code: CodeInvalidInput, Message: msg}
}

func NewEngineError(msg string) error {
	return &EngineError{Code: CodeEngine, Message: msg}
}

// IsValidationError reports whether err is a caller-input failure rather than
// a system fault.
func IsValidationError(err error) bool {
	var ee *EngineError
	return errors.As(err, &ee) && ee.Code == CodeInvalidInput
}
