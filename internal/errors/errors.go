package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// HanziError is the structured error type for hanzi.
// It provides rich context for error handling, logging, and user presentation.
type HanziError struct {
	// Code is the unique error code (e.g., "ERR_206_MALFORMED_RECORD").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *HanziError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("[%s]", e.Code)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *HanziError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with HanziError and the package sentinels.
// A permission error also matches ErrIOFailure.
func (e *HanziError) Is(target error) bool {
	if t, ok := target.(*HanziError); ok {
		if e.Code == ErrCodeFilePermission && t.Code == ErrCodeIOFailure {
			return true
		}
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *HanziError) WithDetail(key, value string) *HanziError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *HanziError) WithSuggestion(suggestion string) *HanziError {
	e.Suggestion = suggestion
	return e
}

// New creates a new HanziError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *HanziError {
	return &HanziError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a HanziError from an existing error.
// The error's message becomes the HanziError message.
func Wrap(code string, err error) *HanziError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// MalformedRecord reports a record whose frontmatter is missing or unparsable.
func MalformedRecord(message string, cause error) *HanziError {
	return New(ErrCodeMalformedRecord, message, cause)
}

// InvalidEnum reports a literal outside a known taxonomy.
func InvalidEnum(kind, value string) *HanziError {
	return New(ErrCodeInvalidEnum, fmt.Sprintf("%q is not a valid %s", value, kind), nil).
		WithDetail("kind", kind).
		WithDetail("value", value)
}

// DuplicateKey reports an add for a key that is already stored.
func DuplicateKey(kind, key string) *HanziError {
	return New(ErrCodeDuplicateKey, fmt.Sprintf("%s %s already exists", kind, key), nil).
		WithDetail("kind", kind).
		WithDetail("key", key)
}

// IOError creates an I/O-related error. A cause rooted in a permission
// denial yields ErrCodeFilePermission instead.
func IOError(message string, cause error) *HanziError {
	if cause != nil && errors.Is(cause, fs.ErrPermission) {
		return New(ErrCodeFilePermission, message, cause).
			WithSuggestion("check the file and directory permissions")
	}
	return New(ErrCodeIOFailure, message, cause)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *HanziError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *HanziError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *HanziError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	if he, ok := asHanziError(err); ok {
		return he.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a HanziError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	if he, ok := asHanziError(err); ok {
		return he.Code
	}
	return ""
}

// GetCategory extracts the category from a HanziError anywhere in the chain.
// Returns empty string if there is none.
func GetCategory(err error) Category {
	if he, ok := asHanziError(err); ok {
		return he.Category
	}
	return ""
}

// asHanziError walks the Unwrap chain looking for a HanziError.
func asHanziError(err error) (*HanziError, bool) {
	for err != nil {
		if he, ok := err.(*HanziError); ok {
			return he, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
