package config

import (
	"errors"
	"slices"
)

// Formats lists the accepted report formats.
var Formats = []string{"text", "json", "yaml", "toml"}

// Validation errors for configuration fields.
var (
	// ErrNegativeTimeout indicates the timeout is below zero.
	ErrNegativeTimeout = errors.New("timeout must be >= 0")

	// ErrWorkersTooLow indicates the worker count is below one.
	ErrWorkersTooLow = errors.New("workers must be >= 1")

	// ErrInvalidFormat indicates an unrecognized report format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrMaxSizeTooLow indicates a non-positive read limit.
	ErrMaxSizeTooLow = errors.New("max_size must be > 0")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Timeout < 0 {
		errs = append(errs, ErrNegativeTimeout)
	}

	if cfg.Workers < 1 {
		errs = append(errs, ErrWorkersTooLow)
	}

	if !slices.Contains(Formats, cfg.Format) {
		errs = append(errs, &FieldError{
			Field: "format",
			Value: cfg.Format,
			Err:   ErrInvalidFormat,
		})
	}

	if cfg.MaxSize <= 0 {
		errs = append(errs, ErrMaxSizeTooLow)
	}

	return errs
}

// FieldError represents an invalid value for a specific field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
