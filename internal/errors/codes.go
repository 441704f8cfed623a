// Package errors provides structured error handling for hanzi.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO and record-file errors
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeIOFailure       = "ERR_201_IO_FAILURE"
	ErrCodeFilePermission  = "ERR_202_FILE_PERMISSION"
	ErrCodeLockHeld        = "ERR_203_LOCK_HELD"
	ErrCodeMalformedRecord = "ERR_206_MALFORMED_RECORD"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidEnum  = "ERR_402_INVALID_ENUM"
	ErrCodeQueryEmpty   = "ERR_404_QUERY_EMPTY"
	ErrCodeDuplicateKey = "ERR_407_DUPLICATE_KEY"
	ErrCodeNotFound     = "ERR_408_NOT_FOUND"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeSearchFailed = "ERR_503_SEARCH_FAILED"
)

// Sentinels for errors.Is. A HanziError matches a sentinel when the codes
// are equal, so callers never need to inspect codes directly.
var (
	ErrMalformedRecord = &HanziError{Code: ErrCodeMalformedRecord}
	ErrInvalidEnum     = &HanziError{Code: ErrCodeInvalidEnum}
	ErrDuplicateKey    = &HanziError{Code: ErrCodeDuplicateKey}
	ErrIOFailure       = &HanziError{Code: ErrCodeIOFailure}
	ErrFilePermission  = &HanziError{Code: ErrCodeFilePermission}
	ErrInvalidInput    = &HanziError{Code: ErrCodeInvalidInput}
	ErrNotFound        = &HanziError{Code: ErrCodeNotFound}
	ErrConfigNotFound  = &HanziError{Code: ErrCodeConfigNotFound}
	ErrLockHeld        = &HanziError{Code: ErrCodeLockHeld}
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_CONFIG_NOT_FOUND")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeMalformedRecord, ErrCodeDuplicateKey:
		// Both are skipped or reported while the surrounding operation continues.
		return SeverityWarning
	case ErrCodeInternal:
		return SeverityFatal
	default:
		return SeverityError
	}
}
