package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/elapse/internal/chrono"
)

// Kind tags what a parsed Value holds.
type Kind uint8

const (
	// KindTimestamp values carry calendar fields in Value.Fields.
	KindTimestamp Kind = iota + 1

	// KindDuration values carry a span in Value.Duration.
	KindDuration

	// KindNow values carry nothing; the caller substitutes the current instant.
	KindNow
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindDuration:
		return "duration"
	case KindNow:
		return "now"
	default:
		return "unknown"
	}
}

// Value is the tagged result of Parse.
type Value struct {
	Kind     Kind
	Fields   chrono.CalendarFields
	Duration chrono.Duration

	// Input is the normalized text the value was parsed from.
	Input string
}

// Parse classifies input and parses it as a timestamp, a duration
// expression, or the "now" keyword.
func Parse(input string) (Value, error) {
	s := clean(input)
	if s == "" {
		return Value{}, newError(ErrCodeEmptyInput, s, "", "input is empty")
	}
	if strings.EqualFold(s, "now") {
		return Value{Kind: KindNow, Input: s}, nil
	}

	switch classify(s) {
	case KindTimestamp:
		fields, err := ParseTimestamp(s)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindTimestamp, Fields: fields, Input: s}, nil
	case KindDuration:
		d, err := ParseDuration(s)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindDuration, Duration: d, Input: s}, nil
	}

	return Value{}, newError(ErrCodeMalformedDate, s, "",
		"unrecognized input, expected YYYY-MM-DD[THH:MM[:SS]][±HH:MM] or a duration like 1d2h30m")
}

// Expect returns a ParseError unless v holds one of the wanted kinds.
// The code is MalformedDuration when a duration was wanted first and
// MalformedDate otherwise.
func Expect(v Value, want ...Kind) error {
	names := make([]string, len(want))
	for i, k := range want {
		if v.Kind == k {
			return nil
		}
		names[i] = k.String()
	}
	code := ErrCodeMalformedDate
	if len(want) > 0 && want[0] == KindDuration {
		code = ErrCodeMalformedDuration
	}
	return newError(code, v.Input, "", "expected %s, got %s", strings.Join(names, " or "), v.Kind)
}

// clean trims and NFKC-normalizes raw input.
func clean(input string) string {
	return strings.TrimSpace(norm.NFKC.String(strings.TrimSpace(input)))
}

// classify decides which grammar applies from the first few characters.
// It returns 0 when neither does.
func classify(s string) Kind {
	if s[0] == '+' || s[0] == '-' {
		return KindDuration
	}
	n := countDigits(s)
	if n == 0 {
		return 0
	}
	if n == len(s) {
		// A bare number is a duration with a missing unit.
		return KindDuration
	}
	switch c := s[n]; {
	case c == '-':
		return KindTimestamp
	case isLetter(c) || c == '.':
		return KindDuration
	}
	return 0
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// atoi converts a run of ASCII digits already validated by the caller.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// fractionNanos converts 1-9 fractional digits to nanoseconds.
func fractionNanos(frac string) int32 {
	n := atoi(frac)
	for i := len(frac); i < 9; i++ {
		n *= 10
	}
	return int32(n)
}
