// Package smderrors provides structured error types for smdconv.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between a rejected prior
// analysis, a missing or misaligned study vector, an unknown conversion
// method and a failure inside the aggregation engine.
//
// # Error Categories
//
//   - ConfigurationError: input object or options are not usable as given
//   - MissingArgumentError: a mandatory input is absent
//   - LengthMismatchError: a per-study array disagrees with the study count
//   - InvalidChoiceError: an enumerated value (the conversion method) is unknown
//   - AggregationError: the aggregation engine failed
//
// # Usage with errors.As
//
//	result, err := converter.ConvertWithOptions(converter.WithPrior(prior))
//	if err != nil {
//	    var lenErr *smderrors.LengthMismatchError
//	    if errors.As(err, &lenErr) {
//	        fmt.Printf("%s has %d entries, want %d\n", lenErr.Argument, lenErr.Actual, lenErr.Expected)
//	    }
//	}
package smderrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrConfiguration indicates an unusable input object or option set.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingArgument indicates a mandatory input was not supplied.
	ErrMissingArgument = errors.New("missing argument")

	// ErrLengthMismatch indicates a per-study array has the wrong length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInvalidChoice indicates a value outside an enumerated set.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrAggregation indicates the aggregation engine failed.
	ErrAggregation = errors.New("aggregation error")
)

// ConfigurationError represents an input that is present but not usable,
// such as a prior analysis whose summary measure is not the odds ratio.
type ConfigurationError struct {
	// Option is the name of the problematic option or field
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MissingArgumentError represents a mandatory input that was not supplied,
// or a named data column that does not exist.
type MissingArgumentError struct {
	// Argument is the name of the missing input (e.g., "lnOR")
	Argument string
	// Column is the data column that was looked up, if any
	Column string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *MissingArgumentError) Error() string {
	msg := "missing argument"
	if e.Argument != "" {
		msg += " " + e.Argument
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" (column %q not found)", e.Column)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as MissingArgumentError has no underlying cause.
func (e *MissingArgumentError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument
}

// LengthMismatchError represents a per-study array whose length disagrees
// with the number of studies.
type LengthMismatchError struct {
	// Argument is the name of the offending input (e.g., "selnOR", "subset")
	Argument string
	// Expected is the study count k
	Expected int
	// Actual is the length (or selected count) that was found
	Actual int
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *LengthMismatchError) Error() string {
	msg := "length mismatch"
	if e.Argument != "" {
		msg += " for " + e.Argument
	}
	msg += fmt.Sprintf(" (expected: %d, actual: %d)", e.Expected, e.Actual)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as LengthMismatchError has no underlying cause.
func (e *LengthMismatchError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// InvalidChoiceError represents a value that does not match exactly one
// entry of an enumerated set.
type InvalidChoiceError struct {
	// Argument is the name of the input (e.g., "method")
	Argument string
	// Value is the string that was supplied
	Value string
	// Choices lists the accepted values
	Choices []string
	// Ambiguous is true when Value is a prefix of more than one choice
	Ambiguous bool
}

// Error returns a human-readable error message.
func (e *InvalidChoiceError) Error() string {
	msg := "invalid choice"
	if e.Ambiguous {
		msg = "ambiguous choice"
	}
	if e.Argument != "" {
		msg += " for " + e.Argument
	}
	msg += fmt.Sprintf(" %q", e.Value)
	if len(e.Choices) > 0 {
		msg += ": must be one of " + strings.Join(e.Choices, ", ")
	}
	return msg
}

// Unwrap returns nil as InvalidChoiceError has no underlying cause.
func (e *InvalidChoiceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *InvalidChoiceError) Is(target error) bool {
	return target == ErrInvalidChoice
}

// AggregationError wraps a failure reported by the aggregation engine.
// The cause is kept intact so callers can still match engine-specific errors.
type AggregationError struct {
	// Engine names the aggregator that failed, if known
	Engine string
	// Cause is the error returned by the engine
	Cause error
}

// Error returns a human-readable error message.
func (e *AggregationError) Error() string {
	msg := "aggregation error"
	if e.Engine != "" {
		msg += " in " + e.Engine
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *AggregationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *AggregationError) Is(target error) bool {
	return target == ErrAggregation
}
