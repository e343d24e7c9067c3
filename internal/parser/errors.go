package parser

import (
	"errors"
	"fmt"
)

// ParseErrorCode categorizes parse failures.
type ParseErrorCode string

const (
	// ErrCodeEmptyInput indicates the input was empty or only whitespace.
	ErrCodeEmptyInput ParseErrorCode = "EmptyInput"

	// ErrCodeMalformedDate indicates input that is neither a duration nor a
	// well-formed timestamp.
	ErrCodeMalformedDate ParseErrorCode = "MalformedDate"

	// ErrCodeMalformedDuration indicates a duration expression with a
	// dangling sign, repeated or out-of-order units, or a misplaced fraction.
	ErrCodeMalformedDuration ParseErrorCode = "MalformedDuration"

	// ErrCodeUnknownUnit indicates a duration unit other than d, h, m or s,
	// or a number with no unit at all.
	ErrCodeUnknownUnit ParseErrorCode = "UnknownUnit"

	// ErrCodeOutOfRangeField indicates a syntactically valid field whose value
	// is out of range (month 13, hour 25, a duration beyond int64 seconds).
	ErrCodeOutOfRangeField ParseErrorCode = "OutOfRangeField"

	// ErrCodeMalformedClock indicates a 12-hour clock time or range that does
	// not match H:MM[AM|PM].
	ErrCodeMalformedClock ParseErrorCode = "MalformedClock"

	// ErrCodeAmbiguousMeridiem indicates a clock range where only one end
	// carries AM/PM.
	ErrCodeAmbiguousMeridiem ParseErrorCode = "AmbiguousMeridiem"
)

// ParseError reports why an input string could not be parsed.
type ParseError struct {
	// Code identifies the error category.
	Code ParseErrorCode

	// Message is a human-readable description.
	Message string

	// Input is the complete input, after trimming and normalization.
	Input string

	// Fragment is the offending substring of Input.
	Fragment string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Fragment != "" && e.Fragment != e.Input {
		return fmt.Sprintf("%s: %s (input %q, at %q)", e.Code, e.Message, e.Input, e.Fragment)
	}
	return fmt.Sprintf("%s: %s (input %q)", e.Code, e.Message, e.Input)
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// HasCode returns true if err is or wraps a ParseError with the given code.
func HasCode(err error, code ParseErrorCode) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

func newError(code ParseErrorCode, input, fragment, format string, args ...any) *ParseError {
	return &ParseError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Input:    input,
		Fragment: fragment,
	}
}
