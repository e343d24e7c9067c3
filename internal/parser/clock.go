package parser

import (
	"fmt"
	"strings"
)

// Meridiem is the AM/PM marker of a 12-hour clock time.
type Meridiem uint8

const (
	MeridiemNone Meridiem = iota
	MeridiemAM
	MeridiemPM
)

// String returns "AM", "PM" or "".
func (m Meridiem) String() string {
	switch m {
	case MeridiemAM:
		return "AM"
	case MeridiemPM:
		return "PM"
	}
	return ""
}

// ClockTime is a 12-hour wall-clock time of day.
type ClockTime struct {
	Hour     int // 1-12
	Minute   int // 0-59
	Meridiem Meridiem
	Input    string
}

// MinuteOfDay converts the time to minutes after midnight.
// A time without a meridiem is read as AM.
func (c ClockTime) MinuteOfDay() int {
	h := c.Hour
	switch c.Meridiem {
	case MeridiemPM:
		if h != 12 {
			h += 12
		}
	default:
		if h == 12 {
			h = 0
		}
	}
	return h*60 + c.Minute
}

// String renders the time as "9:05AM".
func (c ClockTime) String() string {
	m := c.Meridiem
	if m == MeridiemNone {
		m = MeridiemAM
	}
	return fmt.Sprintf("%d:%02d%s", c.Hour, c.Minute, m)
}

// ParseClock parses "H:MM" or "HH:MM" with an optional AM/PM suffix,
// case-insensitive and with no space before the suffix.
func ParseClock(input string) (ClockTime, error) {
	s := clean(input)
	if s == "" {
		return ClockTime{}, newError(ErrCodeEmptyInput, s, "", "clock time is empty")
	}

	ct := ClockTime{Input: s}
	body := s
	if len(body) >= 2 {
		suffix := strings.ToUpper(body[len(body)-2:])
		if suffix == "AM" || suffix == "PM" {
			if len(body) == 2 {
				return ClockTime{}, newError(ErrCodeMalformedClock, s, s, "clock time is only a meridiem")
			}
			if !isLetter(body[len(body)-3]) {
				ct.Meridiem = MeridiemAM
				if suffix == "PM" {
					ct.Meridiem = MeridiemPM
				}
				body = body[:len(body)-2]
			}
		}
	}

	hourText, minuteText, ok := strings.Cut(body, ":")
	if !ok || strings.Contains(minuteText, ":") {
		return ClockTime{}, newError(ErrCodeMalformedClock, s, body, "expected H:MM or HH:MM, optionally followed by AM or PM")
	}
	if n := len(hourText); n < 1 || n > 2 || countDigits(hourText) != n {
		return ClockTime{}, newError(ErrCodeMalformedClock, s, hourText, "hour must be 1 or 2 digits")
	}
	if len(minuteText) != 2 || countDigits(minuteText) != 2 {
		return ClockTime{}, newError(ErrCodeMalformedClock, s, minuteText, "minute must be 2 digits")
	}

	ct.Hour = atoi(hourText)
	ct.Minute = atoi(minuteText)
	if ct.Hour < 1 || ct.Hour > 12 {
		return ClockTime{}, newError(ErrCodeOutOfRangeField, s, hourText, "hour %d out of range 1-12", ct.Hour)
	}
	if ct.Minute > 59 {
		return ClockTime{}, newError(ErrCodeOutOfRangeField, s, minuteText, "minute %d out of range 00-59", ct.Minute)
	}
	return ct, nil
}

// ClockRange is a same-day span between two clock times.
type ClockRange struct {
	Start ClockTime
	End   ClockTime
	Input string
}

// ParseClockRange parses "START-END". Either both ends carry AM/PM or
// neither does; in the latter case START is read as AM and END as PM.
func ParseClockRange(input string) (ClockRange, error) {
	s := clean(input)
	if s == "" {
		return ClockRange{}, newError(ErrCodeEmptyInput, s, "", "clock range is empty")
	}

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return ClockRange{}, newError(ErrCodeMalformedClock, s, "", "expected START-END, such as 9:00AM-5:30PM")
	}
	rawStart := strings.TrimSpace(parts[0])
	rawEnd := strings.TrimSpace(parts[1])
	if rawStart == "" || rawEnd == "" {
		return ClockRange{}, newError(ErrCodeMalformedClock, s, "", "start or end of the range is empty")
	}

	start, err := ParseClock(rawStart)
	if err != nil {
		return ClockRange{}, err
	}
	end, err := ParseClock(rawEnd)
	if err != nil {
		return ClockRange{}, err
	}

	switch {
	case start.Meridiem == MeridiemNone && end.Meridiem == MeridiemNone:
		start.Meridiem = MeridiemAM
		end.Meridiem = MeridiemPM
	case start.Meridiem == MeridiemNone || end.Meridiem == MeridiemNone:
		return ClockRange{}, newError(ErrCodeAmbiguousMeridiem, s, "",
			"both times must specify AM/PM, or neither (then start is AM and end is PM)")
	}
	return ClockRange{Start: start, End: end, Input: s}, nil
}

// ParseClockStart parses the single start time of an open range that ends
// now. The start is always read as AM, so a written AM/PM is rejected.
func ParseClockStart(input string) (ClockTime, error) {
	ct, err := ParseClock(input)
	if err != nil {
		return ClockTime{}, err
	}
	if ct.Meridiem != MeridiemNone {
		return ClockTime{}, newError(ErrCodeMalformedClock, ct.Input, "",
			"a single start time must not specify AM/PM (it is read as AM)")
	}
	ct.Meridiem = MeridiemAM
	return ct, nil
}
