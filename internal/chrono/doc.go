// Package chrono provides the plain value types of the elapse engine and
// the proleptic Gregorian calendar functions that relate them.
//
// This package contains types and pure functions only. All other internal
// packages import chrono; chrono imports nothing internal. This keeps the
// calendar arithmetic the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - NO float types anywhere - instants and durations are int64 seconds
//     plus a non-negative int32 nanosecond remainder
//   - NO wall-clock or ambient timezone access - "now" is always passed in
//   - All JSON tags use snake_case
//   - A day is exactly 86400 seconds (no leap seconds)
package chrono
