package engine

import (
	"time"

	"github.com/roach88/elapse/internal/chrono"
)

// Clock supplies the instant that "now" resolves to.
//
// The engine itself never reads a clock: callers read one once per
// command and pass the instant in, so every evaluation is a pure function
// of its arguments. Tests substitute testutil.FixedClock.
type Clock interface {
	Now() chrono.Instant
}

// SystemClock reads the wall clock in UTC.
//
// Thread-safety: SystemClock is stateless and safe for concurrent use.
type SystemClock struct{}

// Now returns the current wall-clock instant.
func (SystemClock) Now() chrono.Instant {
	return FromTime(time.Now())
}

// FromTime converts a time.Time to an Instant. The location of t is
// irrelevant; only the absolute moment is kept.
func FromTime(t time.Time) chrono.Instant {
	return chrono.Instant{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}
