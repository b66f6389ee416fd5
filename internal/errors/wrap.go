package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// New returns an error with the given message and a stack trace.
func New(msg string) error {
	return crdb.NewWithDepth(1, msg)
}

// Newf returns a formatted error with a stack trace.
func Newf(format string, args ...any) error {
	return crdb.NewWithDepthf(1, format, args...)
}

// Wrap annotates err with a message. It returns nil when err is nil.
func Wrap(err error, msg string) error {
	return crdb.WrapWithDepth(1, err, msg)
}

// Wrapf annotates err with a formatted message. It returns nil when err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdb.WrapWithDepthf(1, err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return crdb.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return crdb.As(err, target)
}

// Mark wraps err so that errors.Is(result, reference) holds while the
// message of err is kept unchanged.
func Mark(err, reference error) error {
	return crdb.Mark(err, reference)
}
