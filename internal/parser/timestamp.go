package parser

import (
	"github.com/roach88/elapse/internal/chrono"
)

// scanner walks a timestamp left to right.
type scanner struct {
	input string
	pos   int
}

func (sc *scanner) done() bool {
	return sc.pos >= len(sc.input)
}

func (sc *scanner) peek() byte {
	if sc.done() {
		return 0
	}
	return sc.input[sc.pos]
}

func (sc *scanner) rest() string {
	return sc.input[sc.pos:]
}

// accept consumes c if it is next.
func (sc *scanner) accept(c byte) bool {
	if sc.peek() == c {
		sc.pos++
		return true
	}
	return false
}

// number consumes exactly n digits.
func (sc *scanner) number(n int, what string) (int, string, error) {
	start := sc.pos
	got := countDigits(sc.rest())
	if got != n {
		frag := sc.rest()
		if frag == "" {
			return 0, "", newError(ErrCodeMalformedDate, sc.input, "", "missing %s", what)
		}
		return 0, "", newError(ErrCodeMalformedDate, sc.input, frag, "%s must be %d digits", what, n)
	}
	sc.pos += n
	text := sc.input[start:sc.pos]
	return atoi(text), text, nil
}

// expect consumes c or fails with a malformed-date error naming what was due.
func (sc *scanner) expect(c byte, what string) error {
	if sc.accept(c) {
		return nil
	}
	if sc.done() {
		return newError(ErrCodeMalformedDate, sc.input, "", "missing %s", what)
	}
	return newError(ErrCodeMalformedDate, sc.input, sc.rest(), "expected %s", what)
}

func (sc *scanner) field(n int, what string, lo, hi int) (int, error) {
	v, text, err := sc.number(n, what)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, newError(ErrCodeOutOfRangeField, sc.input, text, "%s %s out of range %0*d-%d", what, text, n, lo, hi)
	}
	return v, nil
}

// ParseTimestamp parses YYYY-MM-DD[(T|t| )HH:MM[:SS[.F]]][Z|±HH:MM].
//
// Field ranges are checked here. Day-of-month against month length and
// the offset bound are checked by normalization.
func ParseTimestamp(s string) (chrono.CalendarFields, error) {
	var f chrono.CalendarFields
	sc := &scanner{input: s}

	year, _, err := sc.number(4, "year")
	if err != nil {
		return f, err
	}
	f.Year = int64(year)
	if err := sc.expect('-', "'-' after year"); err != nil {
		return f, err
	}
	if f.Month, err = sc.field(2, "month", 1, 12); err != nil {
		return f, err
	}
	if err := sc.expect('-', "'-' after month"); err != nil {
		return f, err
	}
	if f.Day, err = sc.field(2, "day", 1, 31); err != nil {
		return f, err
	}
	if sc.done() {
		return f, nil
	}

	if !sc.accept('T') && !sc.accept('t') && !sc.accept(' ') {
		return f, newError(ErrCodeMalformedDate, s, sc.rest(), "expected 'T' before time of day")
	}
	if f.Hour, err = sc.field(2, "hour", 0, 23); err != nil {
		return f, err
	}
	if err := sc.expect(':', "':' after hour"); err != nil {
		return f, err
	}
	if f.Minute, err = sc.field(2, "minute", 0, 59); err != nil {
		return f, err
	}
	if sc.accept(':') {
		if f.Second, err = sc.field(2, "second", 0, 59); err != nil {
			return f, err
		}
		if sc.accept('.') {
			n := countDigits(sc.rest())
			if n == 0 || n > 9 {
				return f, newError(ErrCodeMalformedDate, s, sc.rest(), "fraction must be 1-9 digits")
			}
			f.Nanosecond = int(fractionNanos(sc.input[sc.pos : sc.pos+n]))
			sc.pos += n
		}
	}

	if f.Offset, err = parseOffset(sc); err != nil {
		return f, err
	}
	if !sc.done() {
		return f, newError(ErrCodeMalformedDate, s, sc.rest(), "unexpected trailing characters")
	}
	return f, nil
}

// ParseOffset parses a standalone UTC offset: Z, ±HH:MM or ±HHMM, at most
// ±24:00.
func ParseOffset(input string) (chrono.Offset, error) {
	s := clean(input)
	if s == "" {
		return chrono.Offset{}, newError(ErrCodeEmptyInput, s, "", "offset is empty")
	}
	sc := &scanner{input: s}
	off, err := parseOffset(sc)
	if err != nil {
		return chrono.Offset{}, err
	}
	if !sc.done() {
		return chrono.Offset{}, newError(ErrCodeMalformedDate, s, sc.rest(), "unexpected trailing characters")
	}
	if off.Seconds > maxOffsetSeconds || off.Seconds < -maxOffsetSeconds {
		return chrono.Offset{}, newError(ErrCodeOutOfRangeField, s, s, "offset %s exceeds ±24:00", off)
	}
	return off, nil
}

// maxOffsetSeconds bounds a standalone offset. Offsets inside timestamps
// are bounded by normalization.
const maxOffsetSeconds = 24 * chrono.SecondsPerHour

// parseOffset reads an optional Z, ±HH:MM or ±HHMM designator.
func parseOffset(sc *scanner) (chrono.Offset, error) {
	switch c := sc.peek(); c {
	case 0:
		return chrono.Offset{}, nil
	case 'Z', 'z':
		sc.pos++
		return chrono.UTC, nil
	case '+', '-':
		sc.pos++
		hours, _, err := sc.number(2, "offset hours")
		if err != nil {
			return chrono.Offset{}, err
		}
		sc.accept(':')
		minutes, err := sc.field(2, "offset minutes", 0, 59)
		if err != nil {
			return chrono.Offset{}, err
		}
		secs := hours*chrono.SecondsPerHour + minutes*chrono.SecondsPerMinute
		if c == '-' {
			secs = -secs
		}
		return chrono.FixedOffset(secs), nil
	}
	return chrono.Offset{}, newError(ErrCodeMalformedDate, sc.input, sc.rest(), "expected UTC offset")
}
