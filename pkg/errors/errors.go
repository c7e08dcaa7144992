package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Log observation errors
	ErrLogRead     ErrorCode = "LOG_READ"
	ErrDecode      ErrorCode = "DECODE"
	ErrPayloadType ErrorCode = "PAYLOAD_TYPE"

	// Alert validation failures
	ErrFieldMissing        ErrorCode = "FIELD_MISSING"
	ErrFieldInvalid        ErrorCode = "FIELD_INVALID"
	ErrFieldUnexpected     ErrorCode = "FIELD_UNEXPECTED"
	ErrAttributeMissing    ErrorCode = "ATTRIBUTE_MISSING"
	ErrAttributeUnexpected ErrorCode = "ATTRIBUTE_UNEXPECTED"
	ErrSchemaInvalid       ErrorCode = "SCHEMA_INVALID"

	// Fixture and config-patch errors
	ErrFixtureCreate ErrorCode = "FIXTURE_CREATE"
	ErrFixtureWrite  ErrorCode = "FIXTURE_WRITE"
	ErrFixtureDelete ErrorCode = "FIXTURE_DELETE"
	ErrOptionWrite   ErrorCode = "OPTION_WRITE"
)

// FimError represents a structured error with code and details
type FimError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FimError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FimError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FimError) Is(target error) bool {
	var targetErr *FimError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FimError with the given code and message
func New(code ErrorCode, message string) *FimError {
	return &FimError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FimError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FimError {
	return &FimError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FimError
func Wrap(err error, code ErrorCode, message string) *FimError {
	if err == nil {
		return nil
	}
	return &FimError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FimError {
	if err == nil {
		return nil
	}
	return &FimError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FimError) WithDetail(key string, value interface{}) *FimError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *FimError) WithDetails(details map[string]interface{}) *FimError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fimErr *FimError
	if errors.As(err, &fimErr) {
		return fimErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FimError
func GetErrorCode(err error) ErrorCode {
	var fimErr *FimError
	if errors.As(err, &fimErr) {
		return fimErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FimError
func GetErrorDetails(err error) map[string]interface{} {
	var fimErr *FimError
	if errors.As(err, &fimErr) {
		return fimErr.Details
	}
	return nil
}

// IsValidationFailure reports whether err is one of the alert or attribute
// validation codes, as opposed to an I/O or decode problem.
func IsValidationFailure(err error) bool {
	switch GetErrorCode(err) {
	case ErrFieldMissing, ErrFieldInvalid, ErrFieldUnexpected,
		ErrAttributeMissing, ErrAttributeUnexpected, ErrSchemaInvalid:
		return true
	}
	return false
}
