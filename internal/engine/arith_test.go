package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/elapse/internal/chrono"
	"github.com/roach88/elapse/internal/testutil"
)

var sampleInstants = []chrono.Instant{
	{},
	{Seconds: -1, Nanos: 500_000_000},
	{Seconds: 1704067200},
	{Seconds: 1710055800, Nanos: 999_999_999},
	{Seconds: -62135596800, Nanos: 1},
	{Seconds: 253402300799},
	{Seconds: math.MaxInt64 / 2, Nanos: 123},
	{Seconds: math.MinInt64 / 2},
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b chrono.Instant
		want chrono.Duration
	}{
		{"forward", chrono.Instant{Seconds: 100}, chrono.Instant{Seconds: 250}, chrono.Duration{Seconds: 150}},
		{"backward", chrono.Instant{Seconds: 250}, chrono.Instant{Seconds: 100}, chrono.Duration{Seconds: -150}},
		{"borrow", chrono.Instant{Seconds: 0, Nanos: 750_000_000}, chrono.Instant{Seconds: 2, Nanos: 250_000_000},
			chrono.Duration{Seconds: 1, Nanos: 500_000_000}},
		{"negative with fraction", chrono.Instant{}, chrono.Instant{Seconds: -1, Nanos: 500_000_000},
			chrono.Duration{Seconds: -1, Nanos: 500_000_000}},
		{"same", chrono.Instant{Seconds: 42, Nanos: 7}, chrono.Instant{Seconds: 42, Nanos: 7}, chrono.Duration{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Between(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBetween_Overflow(t *testing.T) {
	_, err := Between(chrono.Instant{Seconds: math.MinInt64}, chrono.Instant{Seconds: math.MaxInt64})
	require.Error(t, err)
	assert.True(t, IsOverflowError(err))

	// The borrow brings the result back into range.
	d, err := Between(chrono.Instant{Seconds: -1, Nanos: 1}, chrono.Instant{Seconds: math.MaxInt64})
	require.NoError(t, err)
	assert.Equal(t, chrono.Duration{Seconds: math.MaxInt64, Nanos: 999_999_999}, d)
}

func TestBetween_Symmetry(t *testing.T) {
	for _, a := range sampleInstants {
		zero, err := Between(a, a)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())

		for _, b := range sampleInstants {
			ab, err := Between(a, b)
			require.NoError(t, err)
			ba, err := Between(b, a)
			require.NoError(t, err)

			neg, err := Negate(ba)
			require.NoError(t, err)
			assert.Equal(t, ab, neg, "a=%+v b=%+v", a, b)
		}
	}
}

func TestAddToInstant_RoundTrip(t *testing.T) {
	for _, a := range sampleInstants {
		for _, b := range sampleInstants {
			d, err := Between(b, a)
			require.NoError(t, err)
			got, err := AddToInstant(b, d)
			require.NoError(t, err)
			assert.Equal(t, a, got, "a=%+v b=%+v", a, b)
		}
	}
}

func TestAddToInstant(t *testing.T) {
	got, err := AddToInstant(chrono.Instant{Seconds: 10, Nanos: 600_000_000}, chrono.Duration{Seconds: 1, Nanos: 600_000_000})
	require.NoError(t, err)
	assert.Equal(t, chrono.Instant{Seconds: 12, Nanos: 200_000_000}, got)

	got, err = AddToInstant(chrono.Instant{Seconds: 10}, chrono.Duration{Seconds: -2, Nanos: 500_000_000})
	require.NoError(t, err)
	assert.Equal(t, chrono.Instant{Seconds: 8, Nanos: 500_000_000}, got)

	got, err = AddToInstant(chrono.Instant{Seconds: math.MaxInt64 - 1, Nanos: 500_000_000}, chrono.Duration{Nanos: 500_000_000})
	require.NoError(t, err)
	assert.Equal(t, chrono.Instant{Seconds: math.MaxInt64}, got)
}

func TestAddToInstant_Overflow(t *testing.T) {
	tests := []struct {
		name string
		i    chrono.Instant
		d    chrono.Duration
	}{
		{"huge day count near max", chrono.Instant{Seconds: math.MaxInt64 - 10}, chrono.Duration{Seconds: 999999999999 * 86400}},
		{"nanosecond carry at max", chrono.Instant{Seconds: math.MaxInt64, Nanos: 500_000_000}, chrono.Duration{Nanos: 500_000_000}},
		{"below min", chrono.Instant{Seconds: math.MinInt64 + 10}, chrono.Duration{Seconds: -11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddToInstant(tt.i, tt.d)
			require.Error(t, err)
			assert.True(t, IsOverflowError(err))
			assert.True(t, IsArithmeticError(err))

			var ae *ArithmeticError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, "add", ae.Op)
			assert.Len(t, ae.Details, 2)
		})
	}
}

func TestAddDurations(t *testing.T) {
	got, err := AddDurations(chrono.Duration{Seconds: -2, Nanos: 500_000_000}, chrono.Duration{Seconds: 1, Nanos: 500_000_000})
	require.NoError(t, err)
	assert.Equal(t, chrono.Duration{}, got)

	// The carry is absorbed by the operand that can take it.
	got, err = AddDurations(chrono.Duration{Seconds: math.MaxInt64, Nanos: 500_000_000}, chrono.Duration{Seconds: -1, Nanos: 500_000_000})
	require.NoError(t, err)
	assert.Equal(t, chrono.Duration{Seconds: math.MaxInt64}, got)

	_, err = AddDurations(chrono.Duration{Seconds: math.MaxInt64}, chrono.Duration{Seconds: 1})
	assert.True(t, IsOverflowError(err))
}

func TestAddToInstant_AcrossLeapDay(t *testing.T) {
	start := testutil.MustInstant(t, "2024-02-28T12:00:00Z")

	got, err := AddToInstant(start, testutil.MustDuration(t, "1d12h"))
	require.NoError(t, err)
	assert.Equal(t, testutil.MustInstant(t, "2024-03-01T00:00:00Z"), got)

	d, err := Between(start, got)
	require.NoError(t, err)
	assert.Equal(t, testutil.MustDuration(t, "36h"), d)
}

func TestSubDurations(t *testing.T) {
	got, err := SubDurations(chrono.Duration{Seconds: 1}, chrono.Duration{Seconds: 0, Nanos: 250_000_000})
	require.NoError(t, err)
	assert.Equal(t, chrono.Duration{Seconds: 0, Nanos: 750_000_000}, got)

	got, err = SubDurations(chrono.Duration{Seconds: math.MinInt64, Nanos: 1}, chrono.Duration{Nanos: 1})
	require.NoError(t, err)
	assert.Equal(t, chrono.Duration{Seconds: math.MinInt64}, got)

	_, err = SubDurations(chrono.Duration{Seconds: math.MinInt64}, chrono.Duration{Nanos: 1})
	assert.True(t, IsOverflowError(err))
}

func TestNegate(t *testing.T) {
	tests := []struct {
		in, want chrono.Duration
	}{
		{chrono.Duration{}, chrono.Duration{}},
		{chrono.Duration{Seconds: 5}, chrono.Duration{Seconds: -5}},
		{chrono.Duration{Seconds: -2, Nanos: 500_000_000}, chrono.Duration{Seconds: 1, Nanos: 500_000_000}},
		{chrono.Duration{Seconds: math.MaxInt64, Nanos: 1}, chrono.Duration{Seconds: math.MinInt64, Nanos: 999_999_999}},
	}
	for _, tt := range tests {
		got, err := Negate(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := Negate(chrono.Duration{Seconds: math.MinInt64})
	assert.True(t, IsOverflowError(err))
}

func TestSum(t *testing.T) {
	got, err := Sum(
		chrono.Duration{Seconds: 3600},
		chrono.Duration{Seconds: -1800},
		chrono.Duration{Seconds: 15, Nanos: 500_000_000},
		chrono.Duration{Seconds: 0, Nanos: 600_000_000},
	)
	require.NoError(t, err)
	assert.Equal(t, chrono.Duration{Seconds: 1816, Nanos: 100_000_000}, got)

	got, err = Sum()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = Sum(chrono.Duration{Seconds: -1, Nanos: 250_000_000}, chrono.Duration{Seconds: -1, Nanos: 250_000_000})
	require.NoError(t, err)
	assert.Equal(t, chrono.Duration{Seconds: -2, Nanos: 500_000_000}, got)
}

func TestSum_OrderIndependent(t *testing.T) {
	ds := []chrono.Duration{{Seconds: math.MaxInt64}, {Seconds: 1}, {Seconds: -1}}

	got, err := Sum(ds...)
	require.NoError(t, err)
	assert.Equal(t, chrono.Duration{Seconds: math.MaxInt64}, got)

	_, err = Sum(chrono.Duration{Seconds: math.MaxInt64}, chrono.Duration{Seconds: 1})
	require.Error(t, err)
	assert.True(t, IsOverflowError(err))
	assert.Contains(t, err.Error(), "op=sum")
}
