package types

import "fmt"

// ErrorCode represents a unified error code across the library.
type ErrorCode string

// Trace normalization error codes. These describe structural anomalies in a
// raw trace; they are recoverable and surface as warnings, never as fatal
// errors.
const (
	ErrDuplicateCallID    ErrorCode = "DUPLICATE_CALL_ID"
	ErrDanglingToolResult ErrorCode = "DANGLING_TOOL_RESULT"
	ErrDuplicateResult    ErrorCode = "DUPLICATE_RESULT"
	ErrUnknownEventKind   ErrorCode = "UNKNOWN_EVENT_KIND"
	ErrUndefinedTool      ErrorCode = "UNDEFINED_TOOL"
)

// Tool definition error codes. These are configuration errors, fatal at
// registration time, and never reach trace normalization.
const (
	ErrStrictSchemaViolation ErrorCode = "STRICT_SCHEMA_VIOLATION"
	ErrDuplicateParameter    ErrorCode = "DUPLICATE_PARAMETER"
	ErrUnknownParameter      ErrorCode = "UNKNOWN_PARAMETER"
	ErrDuplicateTool         ErrorCode = "DUPLICATE_TOOL"
)

// Evaluation error codes.
const (
	ErrMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrUnknownEvaluator     ErrorCode = "UNKNOWN_EVALUATOR"
	ErrInvalidRecord        ErrorCode = "INVALID_RECORD"
	ErrInvalidConfig        ErrorCode = "INVALID_CONFIG"
)

// Error represents a structured error with code, message, and cause.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
