package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/elapse/internal/normalize"
	"github.com/roach88/elapse/internal/parser"
)

// ArithmeticError represents a failure of checked duration arithmetic.
//
// Arithmetic errors include:
//   - Overflow: a result whose seconds do not fit a signed 64-bit integer
//   - Inverted range: a clock range whose end precedes its start
//
// Results are never wrapped or clamped; the error is terminal for the
// computation.
type ArithmeticError struct {
	// Code identifies the error category.
	Code ArithmeticErrorCode

	// Message is a human-readable description.
	Message string

	// Op names the operation that failed ("between", "add", "sum").
	Op string

	// Details contains the operands for diagnostics.
	Details map[string]string
}

// ArithmeticErrorCode categorizes arithmetic errors.
type ArithmeticErrorCode string

const (
	// ErrCodeOverflow indicates a result outside the representable range.
	ErrCodeOverflow ArithmeticErrorCode = "Overflow"

	// ErrCodeInvertedRange indicates a clock range that ends before it starts.
	ErrCodeInvertedRange ArithmeticErrorCode = "InvertedRange"
)

// Error implements the error interface.
func (e *ArithmeticError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsArithmeticError returns true if err is or wraps an ArithmeticError.
func IsArithmeticError(err error) bool {
	var ae *ArithmeticError
	return errors.As(err, &ae)
}

// IsOverflowError returns true if the error is an overflow error.
// Uses errors.As to handle wrapped errors.
func IsOverflowError(err error) bool {
	var ae *ArithmeticError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeOverflow
	}
	return false
}

// IsInvertedRangeError returns true if the error is an inverted clock range.
func IsInvertedRangeError(err error) bool {
	var ae *ArithmeticError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeInvertedRange
	}
	return false
}

// NewOverflowError creates an ArithmeticError for an out-of-range result.
func NewOverflowError(op string, operands ...string) *ArithmeticError {
	details := make(map[string]string, len(operands))
	for i, o := range operands {
		details[fmt.Sprintf("operand_%d", i+1)] = o
	}
	return &ArithmeticError{
		Code:    ErrCodeOverflow,
		Message: "result exceeds the 64-bit seconds range",
		Op:      op,
		Details: details,
	}
}

// NewInvertedRangeError creates an ArithmeticError for a clock range
// whose end precedes its start.
func NewInvertedRangeError(start, end string) *ArithmeticError {
	return &ArithmeticError{
		Code:    ErrCodeInvertedRange,
		Message: fmt.Sprintf("end %s is before start %s", end, start),
		Op:      "hours",
		Details: map[string]string{
			"start": start,
			"end":   end,
		},
	}
}

// ErrorCode returns the reason code of a parse, normalization or
// arithmetic error anywhere in err's chain, or "" for any other error.
func ErrorCode(err error) string {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return string(pe.Code)
	}
	var ne *normalize.NormalizationError
	if errors.As(err, &ne) {
		return string(ne.Code)
	}
	var ae *ArithmeticError
	if errors.As(err, &ae) {
		return string(ae.Code)
	}
	return ""
}
