package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/elapse/internal/chrono"
	"github.com/roach88/elapse/internal/normalize"
	"github.com/roach88/elapse/internal/parser"
)

// MustInstant parses a timestamp and normalizes it, failing the test on error.
func MustInstant(t testing.TB, s string) chrono.Instant {
	t.Helper()
	fields, err := parser.ParseTimestamp(s)
	require.NoError(t, err, "parse %q", s)
	i, err := normalize.Normalize(fields)
	require.NoError(t, err, "normalize %q", s)
	return i
}

// MustDuration parses a duration expression, failing the test on error.
func MustDuration(t testing.TB, s string) chrono.Duration {
	t.Helper()
	d, err := parser.ParseDuration(s)
	require.NoError(t, err, "parse %q", s)
	return d
}
