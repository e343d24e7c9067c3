package chrono

import "fmt"

// Unit sizes used throughout the engine.
const (
	NanosPerSecond   = 1_000_000_000
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
)

// Instant is an absolute point in time: whole seconds since
// 1970-01-01T00:00:00Z plus a nanosecond remainder.
//
// Nanos is always in [0, 1e9), even when Seconds is negative, so
// 1969-12-31T23:59:59.5Z is {Seconds: -1, Nanos: 500000000}.
type Instant struct {
	Seconds int64 `json:"seconds" yaml:"seconds" cbor:"1,keyasint"`
	Nanos   int32 `json:"nanos" yaml:"nanos" cbor:"2,keyasint"`
}

// Compare returns -1, 0 or +1 as i is before, equal to or after j.
func (i Instant) Compare(j Instant) int {
	switch {
	case i.Seconds < j.Seconds:
		return -1
	case i.Seconds > j.Seconds:
		return 1
	case i.Nanos < j.Nanos:
		return -1
	case i.Nanos > j.Nanos:
		return 1
	}
	return 0
}

// Duration is a signed elapsed span in the same normal form as Instant:
// Nanos is a non-negative remainder, so -1.5s is {Seconds: -2, Nanos: 500000000}.
type Duration struct {
	Seconds int64 `json:"seconds" yaml:"seconds" cbor:"1,keyasint"`
	Nanos   int32 `json:"nanos" yaml:"nanos" cbor:"2,keyasint"`
}

// IsZero reports whether d is the empty span.
func (d Duration) IsZero() bool {
	return d.Seconds == 0 && d.Nanos == 0
}

// IsNegative reports whether d is strictly less than zero.
// With a non-negative remainder this is exactly Seconds < 0.
func (d Duration) IsNegative() bool {
	return d.Seconds < 0
}

// OffsetForm records how a UTC offset was written so results can be
// rendered the way their input was.
type OffsetForm uint8

const (
	// OffsetNone means no offset was written; the wall time is UTC.
	OffsetNone OffsetForm = iota

	// OffsetUTC means the input carried a "Z" designator.
	OffsetUTC

	// OffsetNumeric means the input carried "+HH:MM" or "-HH:MM".
	OffsetNumeric
)

// Offset is a fixed UTC offset. Seconds is positive east of Greenwich.
type Offset struct {
	Seconds int        `json:"seconds" yaml:"seconds"`
	Form    OffsetForm `json:"form" yaml:"form"`
}

// UTC is the offset used for instants that have no originating input,
// such as the resolved "now".
var UTC = Offset{Form: OffsetUTC}

// FixedOffset returns a numeric offset of the given number of seconds.
func FixedOffset(seconds int) Offset {
	return Offset{Seconds: seconds, Form: OffsetNumeric}
}

// String renders the offset as written: "", "Z" or "±HH:MM".
func (o Offset) String() string {
	switch o.Form {
	case OffsetNone:
		return ""
	case OffsetUTC:
		return "Z"
	}
	sign := '+'
	secs := o.Seconds
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d:%02d", sign, secs/SecondsPerHour, secs%SecondsPerHour/SecondsPerMinute)
}

// CalendarFields is the human calendar representation of an instant.
// It exists transiently between parsing and normalization, and when an
// instant is rendered back to text.
type CalendarFields struct {
	Year       int64  `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Second     int    `json:"second"`
	Nanosecond int    `json:"nanosecond"`
	Offset     Offset `json:"offset"`
}

// SecondOfDay returns the wall-clock time of day in seconds.
func (f CalendarFields) SecondOfDay() int {
	return f.Hour*SecondsPerHour + f.Minute*SecondsPerMinute + f.Second
}
