// Package parser turns raw textual input into typed values for the engine.
//
// Three kinds of input are recognized:
//
//	2024-03-10T02:30:00-05:00   timestamp  -> chrono.CalendarFields
//	1d2h30m, -90m, +1.5s        duration   -> chrono.Duration
//	now                         now        -> resolved later by the caller
//
// Timestamps follow YYYY-MM-DD[(T| )HH:MM[:SS[.fraction]]][Z|±HH:MM]; a bare
// date means midnight. Durations are an optional sign followed by
// number/unit pairs with units d, h, m and s, each at most once and in
// that order. Only the seconds component may carry a fraction.
//
// Input is NFKC-normalized first, so full-width digits and separators
// parse like their ASCII forms. Fields are range-checked but never
// clamped: month 13 or hour 25 is an OutOfRangeField error. Whether a day
// exists in its month is left to the normalize package.
//
// The package also parses 12-hour clock times ("9:00AM", "5:30pm") and
// same-day ranges of them ("9:00AM-5:30PM") for the hours mode.
package parser
