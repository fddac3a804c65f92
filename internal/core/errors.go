// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Location errors
	ErrCorpusNotFound  = &Error{Code: "CORPUS_NOT_FOUND", Message: "corpus not found"}
	ErrCorpusExists    = &Error{Code: "CORPUS_EXISTS", Message: "corpus already exists"}
	ErrInvalidLocation = &Error{Code: "INVALID_LOCATION", Message: "invalid corpus location"}

	// Serialization errors
	ErrEncodeFailed = &Error{Code: "ENCODE_FAILED", Message: "corpus serialization failed"}
	ErrDecodeFailed = &Error{Code: "DECODE_FAILED", Message: "corpus deserialization failed"}

	// Storage errors
	ErrStorageFailed = &Error{Code: "STORAGE_FAILED", Message: "storage operation failed"}

	// Stats errors
	ErrStatsInvalid = &Error{Code: "STATS_INVALID", Message: "training statistics invalid"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
