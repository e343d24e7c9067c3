package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hako/durafmt"

	"github.com/roach88/elapse/internal/chrono"
)

// Breakdown is a duration split into display units. It is derived from a
// Duration on demand and never stored.
type Breakdown struct {
	Negative bool   `json:"negative" yaml:"negative" cbor:"1,keyasint"`
	Days     uint64 `json:"days" yaml:"days" cbor:"2,keyasint"`
	Hours    int    `json:"hours" yaml:"hours" cbor:"3,keyasint"`
	Minutes  int    `json:"minutes" yaml:"minutes" cbor:"4,keyasint"`
	Seconds  int    `json:"seconds" yaml:"seconds" cbor:"5,keyasint"`
	Nanos    int32  `json:"nanos" yaml:"nanos" cbor:"6,keyasint"`
}

// Decompose splits the magnitude of d into days, hours, minutes, seconds
// and nanoseconds. Days is unsigned so the full int64 range fits.
func Decompose(d chrono.Duration) Breakdown {
	var secs uint64
	var nanos int32
	switch {
	case !d.IsNegative():
		secs, nanos = uint64(d.Seconds), d.Nanos
	case d.Nanos == 0:
		// -(s+1) cannot overflow for s < 0.
		secs = uint64(-(d.Seconds + 1)) + 1
	default:
		secs, nanos = uint64(-(d.Seconds + 1)), chrono.NanosPerSecond-d.Nanos
	}

	return Breakdown{
		Negative: d.IsNegative(),
		Days:     secs / chrono.SecondsPerDay,
		Hours:    int(secs % chrono.SecondsPerDay / chrono.SecondsPerHour),
		Minutes:  int(secs % chrono.SecondsPerHour / chrono.SecondsPerMinute),
		Seconds:  int(secs % chrono.SecondsPerMinute),
		Nanos:    nanos,
	}
}

// String renders the breakdown in the compact display form.
func (b Breakdown) String() string {
	var sb strings.Builder
	if b.Negative {
		sb.WriteByte('-')
	}

	// Leading zero units are dropped; once a unit is shown every smaller
	// unit is shown too.
	shown := false
	if b.Days > 0 {
		fmt.Fprintf(&sb, "%dd ", b.Days)
		shown = true
	}
	if shown || b.Hours > 0 {
		fmt.Fprintf(&sb, "%02dh ", b.Hours)
		shown = true
	}
	if shown || b.Minutes > 0 {
		fmt.Fprintf(&sb, "%02dm ", b.Minutes)
	}
	fmt.Fprintf(&sb, "%02d%ss", b.Seconds, fraction(b.Nanos))
	return sb.String()
}

// FormatDuration renders d in the compact display form:
//
//	[-][<days>d ][<HH>h ][<MM>m ]<SS>[.<frac>]s
//
// For example "1d 03h 04m 05s", "-01h 00m 00s", "05.5s" and "00s".
func FormatDuration(d chrono.Duration) string {
	return Decompose(d).String()
}

// maxLongSeconds is the largest magnitude time.Duration can hold.
const maxLongSeconds = math.MaxInt64 / int64(time.Second)

// FormatLong renders d as English words ("1 day 3 hours 4 minutes 5 seconds").
// Days are the largest unit, as in the compact form. Durations beyond
// time.Duration's range use the compact form.
func FormatLong(d chrono.Duration) string {
	if d.Seconds >= maxLongSeconds || d.Seconds <= -maxLongSeconds {
		return FormatDuration(d)
	}
	td := time.Duration(d.Seconds)*time.Second + time.Duration(d.Nanos)
	return durafmt.Parse(td).LimitToUnit("days").String()
}

// FormatInstant renders i as an ISO-8601 timestamp in the given offset,
// written the way the offset was written on input ("", "Z" or "±HH:MM").
// Years outside 0000-9999 carry an explicit sign.
func FormatInstant(i chrono.Instant, off chrono.Offset) string {
	f := chrono.ToCalendar(i, off)

	year := fmt.Sprintf("%04d", f.Year)
	if f.Year < 0 || f.Year > 9999 {
		year = fmt.Sprintf("%+05d", f.Year)
	}
	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d%s%s",
		year, f.Month, f.Day, f.Hour, f.Minute, f.Second, fraction(int32(f.Nanosecond)), off)
}

// fraction returns ".ddd" with trailing zeros trimmed, or "" for zero.
func fraction(nanos int32) string {
	if nanos == 0 {
		return ""
	}
	return "." + strings.TrimRight(fmt.Sprintf("%09d", nanos), "0")
}
