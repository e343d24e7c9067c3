package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/elapse/internal/chrono"
	"github.com/roach88/elapse/internal/parser"
)

// HoursResult is the span between two clock times on the same day.
type HoursResult struct {
	Start   parser.ClockTime
	End     parser.ClockTime
	Minutes int
}

// Hundredths returns the span in hundredths of an hour, rounded half up.
func (h *HoursResult) Hundredths() int {
	return (h.Minutes*100 + 30) / 60
}

// String renders the span as decimal hours, "8.50 hours".
func (h *HoursResult) String() string {
	c := h.Hundredths()
	return fmt.Sprintf("%d.%02d hours", c/100, c%100)
}

// Duration returns the span as a Duration.
func (h *HoursResult) Duration() chrono.Duration {
	return chrono.Duration{Seconds: int64(h.Minutes) * chrono.SecondsPerMinute}
}

// ClockRange computes the hours in a "START-END" range such as
// "9:00AM-5:30PM". Without meridiems START is AM and END is PM.
func ClockRange(input string) (*HoursResult, error) {
	r, err := parser.ParseClockRange(input)
	if err != nil {
		return nil, err
	}
	return span(r.Start, r.End, r.Start.MinuteOfDay(), r.End.MinuteOfDay())
}

// ClockSince computes the hours from a clock time to now, where now is
// read as a wall clock in the given offset. The start is read as AM and
// must not carry a meridiem.
func ClockSince(start string, now chrono.Instant, off chrono.Offset) (*HoursResult, error) {
	ct, err := parser.ParseClockStart(start)
	if err != nil {
		return nil, err
	}

	f := chrono.ToCalendar(now, off)
	end := parser.ClockTime{Hour: f.Hour % 12, Minute: f.Minute, Meridiem: parser.MeridiemAM}
	if f.Hour >= 12 {
		end.Meridiem = parser.MeridiemPM
	}
	if end.Hour == 0 {
		end.Hour = 12
	}
	return span(ct, end, ct.MinuteOfDay(), f.Hour*60+f.Minute)
}

// EvaluateHours dispatches to ClockRange when input contains a '-' and to
// ClockSince otherwise.
func EvaluateHours(input string, now chrono.Instant, off chrono.Offset) (*HoursResult, error) {
	if strings.ContainsAny(input, "-－") {
		return ClockRange(input)
	}
	return ClockSince(input, now, off)
}

func span(start, end parser.ClockTime, from, to int) (*HoursResult, error) {
	if to < from {
		return nil, NewInvertedRangeError(start.String(), end.String())
	}
	return &HoursResult{Start: start, End: end, Minutes: to - from}, nil
}
