package errors

import (
	"fmt"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates every validated feed passed.
	ExitSuccess = 0

	// ExitUser indicates a user-facing failure: bad usage, no feeds found,
	// or at least one feed that failed validation.
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O outside feed validation).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoSources indicates the target resolved to zero feed sources.
	ErrNoSources = New("no feed sources found")

	// ErrValidationFailed indicates at least one feed failed validation.
	ErrValidationFailed = New("validation failed")

	// ErrRead indicates a local feed file could not be read.
	ErrRead = New("cannot read source")

	// ErrFetch indicates a remote feed could not be fetched.
	ErrFetch = New("cannot fetch source")

	// ErrInvalidUTF8 indicates the feed content is not valid UTF-8.
	ErrInvalidUTF8 = New("content is not valid UTF-8")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = New("invalid configuration")

	// ErrMissingTarget indicates no target argument was supplied.
	ErrMissingTarget = New("target is required")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Check the rsscheck config file or RSSCHECK_* environment variables",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code carried by err. A nil error maps to
// ExitSuccess and an error without an ExitError in its chain maps to ExitUser.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
