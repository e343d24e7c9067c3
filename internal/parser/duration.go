package parser

import (
	"strconv"

	"github.com/roach88/elapse/internal/chrono"
)

// durationUnits lists the accepted units in the order they must appear.
var durationUnits = []struct {
	token   string
	seconds int64
}{
	{"d", chrono.SecondsPerDay},
	{"h", chrono.SecondsPerHour},
	{"m", chrono.SecondsPerMinute},
	{"s", 1},
}

func unitRank(token string) int {
	for i, u := range durationUnits {
		if u.token == token {
			return i
		}
	}
	return -1
}

// ParseDuration parses a signed duration expression such as "1d2h30m",
// "-90m" or "+1.5s".
//
// Units are fixed-length: a day is always 86400 seconds. Calendar units
// (months, years) are not accepted because their length depends on the
// date they are applied to.
func ParseDuration(s string) (chrono.Duration, error) {
	body := s
	negative := false
	if body != "" && (body[0] == '+' || body[0] == '-') {
		negative = body[0] == '-'
		body = body[1:]
	}
	if body == "" {
		return chrono.Duration{}, newError(ErrCodeMalformedDuration, s, s, "sign without a magnitude")
	}

	var (
		total    int64
		nanos    int32
		lastRank = -1
	)
	for body != "" {
		n := countDigits(body)
		if n == 0 {
			return chrono.Duration{}, newError(ErrCodeMalformedDuration, s, body, "expected a number")
		}
		num := body[:n]
		rest := body[n:]

		frac := ""
		if rest != "" && rest[0] == '.' {
			k := countDigits(rest[1:])
			if k == 0 || k > 9 {
				return chrono.Duration{}, newError(ErrCodeMalformedDuration, s, rest, "fraction must be 1-9 digits")
			}
			frac = rest[1 : 1+k]
			rest = rest[1+k:]
		}

		u := 0
		for u < len(rest) && isLetter(rest[u]) {
			u++
		}
		if u == 0 {
			if rest == "" {
				return chrono.Duration{}, newError(ErrCodeUnknownUnit, s, num, "missing unit after %s, expected one of d, h, m, s", num)
			}
			return chrono.Duration{}, newError(ErrCodeMalformedDuration, s, rest, "unexpected character %q", rest[:1])
		}
		token := rest[:u]
		rank := unitRank(token)
		if rank < 0 {
			return chrono.Duration{}, newError(ErrCodeUnknownUnit, s, token, "unknown unit %q, expected one of d, h, m, s", token)
		}
		if rank <= lastRank {
			return chrono.Duration{}, newError(ErrCodeMalformedDuration, s, token, "unit %q repeated or out of order, units go d, h, m, s", token)
		}
		if frac != "" && token != "s" {
			return chrono.Duration{}, newError(ErrCodeMalformedDuration, s, num+"."+frac+token, "only seconds may have a fraction")
		}
		lastRank = rank

		// Negative magnitudes accumulate below zero so that the minimum
		// int64 second count stays reachable.
		signed := num
		if negative {
			signed = "-" + num
		}
		v, err := strconv.ParseInt(signed, 10, 64)
		if err != nil {
			return chrono.Duration{}, newError(ErrCodeOutOfRangeField, s, num, "number %s exceeds the 64-bit range", num)
		}
		secs, ok := chrono.MulInt64(v, durationUnits[rank].seconds)
		if ok {
			total, ok = chrono.AddInt64(total, secs)
		}
		if !ok {
			return chrono.Duration{}, newError(ErrCodeOutOfRangeField, s, num+token, "duration exceeds the 64-bit second range")
		}
		if frac != "" {
			nanos = fractionNanos(frac)
		}
		body = rest[u:]
	}

	if !negative || nanos == 0 {
		return chrono.Duration{Seconds: total, Nanos: nanos}, nil
	}
	secs, ok := chrono.AddInt64(total, -1)
	if !ok {
		return chrono.Duration{}, newError(ErrCodeOutOfRangeField, s, s, "duration exceeds the 64-bit second range")
	}
	return chrono.Duration{Seconds: secs, Nanos: chrono.NanosPerSecond - nanos}, nil
}
