// Package engine implements elapsed-time arithmetic and formatting.
//
// The engine is the last stage of the pipeline:
//
//	raw input → parser.Parse → normalize.Normalize → engine arithmetic → display
//
// ARITHMETIC:
//
// Instants and durations are exact whole seconds plus a non-negative
// nanosecond remainder. Addition and subtraction carry and borrow
// explicitly, and every operation checks the int64 seconds range. A result
// that does not fit fails with an ArithmeticError (code Overflow); nothing
// wraps or saturates.
//
// FORMATTING:
//
// Durations render in a compact fixed-field form ("1d 03h 04m 05s") or in
// English words (FormatLong). Instants render as ISO-8601 in the offset the
// input was written with.
//
// DETERMINISM:
//
// The engine holds no state and reads no clock or environment. "now" is an
// argument; callers read a Clock once per command and pass the instant in.
// All functions are safe for concurrent use.
package engine
