// Package errors provides a lightweight structured error type (BinutilsError)
// for category-based classification, user-facing hints and exit codes.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a cargo-binutils error for classification.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External toolchain errors
	CategoryToolchain  ErrorCategory = "toolchain"
	CategoryBuild      ErrorCategory = "build"
	CategoryInvocation ErrorCategory = "invocation"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// BinutilsError is a structured error with category, an optional remedy and context.
type BinutilsError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	// Hint tells the user what to do next; printed below the message.
	Hint    string        `json:"hint,omitempty"`
	Context ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BinutilsError
type ContextFields map[string]any

// Error implements the error interface
func (e *BinutilsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BinutilsError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BinutilsError) WithContext(key string, value any) *BinutilsError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithHint attaches a remedy shown to the user.
func (e *BinutilsError) WithHint(hint string) *BinutilsError {
	e.Hint = hint
	return e
}

// New creates a new BinutilsError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BinutilsError {
	return &BinutilsError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BinutilsError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BinutilsError {
	return &BinutilsError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error (or anything it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	var be *BinutilsError
	if stdErrors.As(err, &be) {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BinutilsError
func GetCategory(err error) ErrorCategory {
	var be *BinutilsError
	if stdErrors.As(err, &be) {
		return be.Category
	}
	return CategoryInternal
}

// ExitStatus reports a child exit code that the proxy passes through
// unchanged. The child already explained itself, so nothing is printed.
type ExitStatus struct {
	Code int
}

func (e *ExitStatus) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// ExitCode returns the code to exit with.
func (e *ExitStatus) ExitCode() int { return e.Code }

// Exit returns nil for code 0 and an *ExitStatus otherwise.
func Exit(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitStatus{Code: code}
}
