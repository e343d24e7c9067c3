package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/elapse/internal/chrono"
)

func TestNormalize_Valid(t *testing.T) {
	tests := []struct {
		name   string
		fields chrono.CalendarFields
		want   chrono.Instant
	}{
		{
			name:   "epoch",
			fields: chrono.CalendarFields{Year: 1970, Month: 1, Day: 1},
			want:   chrono.Instant{},
		},
		{
			name:   "before epoch",
			fields: chrono.CalendarFields{Year: 1969, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Nanosecond: 500_000_000},
			want:   chrono.Instant{Seconds: -1, Nanos: 500_000_000},
		},
		{
			name:   "new year 2024",
			fields: chrono.CalendarFields{Year: 2024, Month: 1, Day: 1},
			want:   chrono.Instant{Seconds: 1704067200},
		},
		{
			name:   "leap day 2024",
			fields: chrono.CalendarFields{Year: 2024, Month: 2, Day: 29},
			want:   chrono.Instant{Seconds: 1709164800},
		},
		{
			name:   "leap day 2000",
			fields: chrono.CalendarFields{Year: 2000, Month: 2, Day: 29},
			want:   chrono.Instant{Seconds: 951782400},
		},
		{
			name: "negative offset",
			fields: chrono.CalendarFields{Year: 2024, Month: 3, Day: 10, Hour: 2, Minute: 30,
				Offset: chrono.FixedOffset(-5 * 3600)},
			want: chrono.Instant{Seconds: 1710055800},
		},
		{
			name: "zulu",
			fields: chrono.CalendarFields{Year: 2024, Month: 3, Day: 10, Hour: 7, Minute: 30,
				Offset: chrono.UTC},
			want: chrono.Instant{Seconds: 1710055800},
		},
		{
			name: "offset of exactly 24 hours",
			fields: chrono.CalendarFields{Year: 1970, Month: 1, Day: 2,
				Offset: chrono.FixedOffset(24 * 3600)},
			want: chrono.Instant{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_InvalidCalendarDate(t *testing.T) {
	tests := []struct {
		name   string
		fields chrono.CalendarFields
	}{
		{"common year february 29", chrono.CalendarFields{Year: 2023, Month: 2, Day: 29}},
		{"century february 29", chrono.CalendarFields{Year: 1900, Month: 2, Day: 29}},
		{"april 31", chrono.CalendarFields{Year: 2024, Month: 4, Day: 31}},
		{"day zero", chrono.CalendarFields{Year: 2024, Month: 1, Day: 0}},
		{"month 13", chrono.CalendarFields{Year: 2024, Month: 13, Day: 1}},
		{"hour 24", chrono.CalendarFields{Year: 2024, Month: 1, Day: 1, Hour: 24}},
		{"second 60", chrono.CalendarFields{Year: 2024, Month: 1, Day: 1, Second: 60}},
		{"negative nanos", chrono.CalendarFields{Year: 2024, Month: 1, Day: 1, Nanosecond: -1}},
		{"year beyond range", chrono.CalendarFields{Year: math.MaxInt64, Month: 1, Day: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.fields)
			require.Error(t, err)
			assert.True(t, HasCode(err, ErrCodeInvalidCalendarDate), "got %v", err)
		})
	}
}

func TestNormalize_InvalidOffset(t *testing.T) {
	fields := chrono.CalendarFields{Year: 2024, Month: 1, Day: 1,
		Offset: chrono.FixedOffset(24*3600 + 60)}

	_, err := Normalize(fields)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrCodeInvalidOffset))
	assert.Contains(t, err.Error(), "+24:01")

	fields.Offset = chrono.FixedOffset(-30 * 3600)
	_, err = Normalize(fields)
	assert.True(t, HasCode(err, ErrCodeInvalidOffset))
}

func TestNormalize_ErrorMessage(t *testing.T) {
	_, err := Normalize(chrono.CalendarFields{Year: 2023, Month: 2, Day: 29})
	require.Error(t, err)
	assert.Equal(t, "InvalidCalendarDate: February 2023 has 28 days (date 2023-02-29)", err.Error())
	assert.True(t, IsNormalizationError(err))
	assert.False(t, IsNormalizationError(assert.AnError))
}

func TestNormalize_RoundTrip(t *testing.T) {
	years := []int64{-4713, -1, 0, 1, 1582, 1900, 1969, 1970, 2000, 2023, 2024, 2100, 9999, 275760}
	offsets := []chrono.Offset{{}, chrono.UTC, chrono.FixedOffset(-5 * 3600), chrono.FixedOffset(14 * 3600)}

	for _, year := range years {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 15, chrono.DaysInMonth(year, month)} {
				for _, off := range offsets {
					in := chrono.CalendarFields{
						Year: year, Month: month, Day: day,
						Hour: 23, Minute: 59, Second: 58, Nanosecond: 7,
						Offset: off,
					}
					instant, err := Normalize(in)
					require.NoError(t, err, "%+v", in)
					assert.Equal(t, in, chrono.ToCalendar(instant, off), "%+v", in)
				}
			}
		}
	}
}

func TestNormalize_YearBounds(t *testing.T) {
	for _, year := range []int64{chrono.MinYear, chrono.MaxYear} {
		f := chrono.CalendarFields{Year: year, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59}
		instant, err := Normalize(f)
		require.NoError(t, err)
		assert.Equal(t, f, chrono.ToCalendar(instant, f.Offset))
	}
}
