package normalize

import (
	"errors"
	"fmt"

	"github.com/roach88/elapse/internal/chrono"
)

// NormalizationErrorCode categorizes normalization failures.
type NormalizationErrorCode string

const (
	// ErrCodeInvalidCalendarDate indicates fields that do not name a real
	// moment: February 30th, the 29th of February in a common year, hour 24.
	ErrCodeInvalidCalendarDate NormalizationErrorCode = "InvalidCalendarDate"

	// ErrCodeInvalidOffset indicates a UTC offset beyond ±24:00.
	ErrCodeInvalidOffset NormalizationErrorCode = "InvalidOffset"
)

// NormalizationError reports syntactically valid fields that cannot be
// turned into an instant.
type NormalizationError struct {
	Code    NormalizationErrorCode
	Message string
	Fields  chrono.CalendarFields
}

// Error implements the error interface.
func (e *NormalizationError) Error() string {
	f := e.Fields
	return fmt.Sprintf("%s: %s (date %04d-%02d-%02d)", e.Code, e.Message, f.Year, f.Month, f.Day)
}

// IsNormalizationError returns true if err is or wraps a NormalizationError.
func IsNormalizationError(err error) bool {
	var ne *NormalizationError
	return errors.As(err, &ne)
}

// HasCode returns true if err is or wraps a NormalizationError with the given code.
func HasCode(err error, code NormalizationErrorCode) bool {
	var ne *NormalizationError
	if errors.As(err, &ne) {
		return ne.Code == code
	}
	return false
}

func newError(code NormalizationErrorCode, f chrono.CalendarFields, format string, args ...any) *NormalizationError {
	return &NormalizationError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Fields:  f,
	}
}
