// Package normalize converts calendar fields into absolute instants.
//
// Normalization validates the calendar (month lengths, proleptic Gregorian
// leap years), applies the UTC offset and produces a chrono.Instant. Fields
// without an offset are taken as UTC; the ambient system zone is never
// consulted, so the same input yields the same instant on every machine.
package normalize

import (
	"time"

	"github.com/roach88/elapse/internal/chrono"
)

// MaxOffsetSeconds bounds the magnitude of a UTC offset (24:00).
const MaxOffsetSeconds = 24 * chrono.SecondsPerHour

// Normalize validates f and returns the instant it names.
func Normalize(f chrono.CalendarFields) (chrono.Instant, error) {
	if f.Year < chrono.MinYear || f.Year > chrono.MaxYear {
		return chrono.Instant{}, newError(ErrCodeInvalidCalendarDate, f, "year %d outside the supported range", f.Year)
	}
	if f.Month < 1 || f.Month > 12 {
		return chrono.Instant{}, newError(ErrCodeInvalidCalendarDate, f, "month %d does not exist", f.Month)
	}
	if !chrono.ValidDate(f.Year, f.Month, f.Day) {
		return chrono.Instant{}, newError(ErrCodeInvalidCalendarDate, f, "%s %d has %d days",
			time.Month(f.Month), f.Year, chrono.DaysInMonth(f.Year, f.Month))
	}
	if f.Hour < 0 || f.Hour > 23 || f.Minute < 0 || f.Minute > 59 || f.Second < 0 || f.Second > 59 {
		return chrono.Instant{}, newError(ErrCodeInvalidCalendarDate, f, "time of day %02d:%02d:%02d does not exist",
			f.Hour, f.Minute, f.Second)
	}
	if f.Nanosecond < 0 || f.Nanosecond >= chrono.NanosPerSecond {
		return chrono.Instant{}, newError(ErrCodeInvalidCalendarDate, f, "nanosecond %d out of range", f.Nanosecond)
	}

	offset := 0
	if f.Offset.Form == chrono.OffsetNumeric {
		offset = f.Offset.Seconds
	}
	if offset > MaxOffsetSeconds || offset < -MaxOffsetSeconds {
		return chrono.Instant{}, newError(ErrCodeInvalidOffset, f, "offset %s exceeds ±24:00", f.Offset)
	}

	days := chrono.DaysFromCivil(f.Year, f.Month, f.Day)
	secs, ok := chrono.MulInt64(days, chrono.SecondsPerDay)
	if ok {
		secs, ok = chrono.AddInt64(secs, int64(f.SecondOfDay()-offset))
	}
	if !ok {
		return chrono.Instant{}, newError(ErrCodeInvalidCalendarDate, f, "date is outside the representable range")
	}
	return chrono.Instant{Seconds: secs, Nanos: int32(f.Nanosecond)}, nil
}
