package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock_Valid(t *testing.T) {
	tests := []struct {
		input    string
		hour     int
		minute   int
		meridiem Meridiem
	}{
		{"09:00AM", 9, 0, MeridiemAM},
		{"9:00am", 9, 0, MeridiemAM},
		{"12:30PM", 12, 30, MeridiemPM},
		{"01:15pm", 1, 15, MeridiemPM},
		{"09:00", 9, 0, MeridiemNone},
		{"9:00", 9, 0, MeridiemNone},
		{"12:00", 12, 0, MeridiemNone},
		{" 07:00AM ", 7, 0, MeridiemAM},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.hour, got.Hour)
			assert.Equal(t, tt.minute, got.Minute)
			assert.Equal(t, tt.meridiem, got.Meridiem)
		})
	}
}

func TestParseClock_Invalid(t *testing.T) {
	tests := []struct {
		input string
		code  ParseErrorCode
	}{
		{"900AM", ErrCodeMalformedClock},
		{"09:00XM", ErrCodeMalformedClock},
		{"09:00PMM", ErrCodeMalformedClock},
		{"090:00AM", ErrCodeMalformedClock},
		{"09:0AM", ErrCodeMalformedClock},
		{"09:000AM", ErrCodeMalformedClock},
		{":00AM", ErrCodeMalformedClock},
		{"09:AM", ErrCodeMalformedClock},
		{"9", ErrCodeMalformedClock},
		{"9AM", ErrCodeMalformedClock},
		{"AM", ErrCodeMalformedClock},
		{"", ErrCodeEmptyInput},
		{"10:30 AM", ErrCodeMalformedClock},
		{"AA:00AM", ErrCodeMalformedClock},
		{"09:BBAM", ErrCodeMalformedClock},
		{"00:00AM", ErrCodeOutOfRangeField},
		{"13:00AM", ErrCodeOutOfRangeField},
		{"09:60AM", ErrCodeOutOfRangeField},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseClock(tt.input)
			require.Error(t, err)
			assert.True(t, HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestClockTime_MinuteOfDay(t *testing.T) {
	tests := []struct {
		clock ClockTime
		want  int
	}{
		{ClockTime{Hour: 9, Minute: 0, Meridiem: MeridiemAM}, 9 * 60},
		{ClockTime{Hour: 12, Minute: 0, Meridiem: MeridiemAM}, 0},
		{ClockTime{Hour: 5, Minute: 30, Meridiem: MeridiemPM}, 17*60 + 30},
		{ClockTime{Hour: 12, Minute: 0, Meridiem: MeridiemPM}, 12 * 60},
		{ClockTime{Hour: 7, Minute: 5, Meridiem: MeridiemNone}, 7*60 + 5},
	}
	for _, tt := range tests {
		t.Run(tt.clock.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.clock.MinuteOfDay())
		})
	}
}

func TestParseClockRange(t *testing.T) {
	r, err := ParseClockRange("09:00AM-05:30PM")
	require.NoError(t, err)
	assert.Equal(t, "9:00AM", r.Start.String())
	assert.Equal(t, "5:30PM", r.End.String())

	r, err = ParseClockRange("9:00-5:30")
	require.NoError(t, err)
	assert.Equal(t, MeridiemAM, r.Start.Meridiem)
	assert.Equal(t, MeridiemPM, r.End.Meridiem)

	r, err = ParseClockRange(" 9:00AM - 5:30PM ")
	require.NoError(t, err)
	assert.Equal(t, 9*60, r.Start.MinuteOfDay())
}

func TestParseClockRange_Invalid(t *testing.T) {
	tests := []struct {
		input string
		code  ParseErrorCode
	}{
		{"09:00AM-05:00", ErrCodeAmbiguousMeridiem},
		{"09:00-05:00PM", ErrCodeAmbiguousMeridiem},
		{"09:00AM", ErrCodeMalformedClock},
		{"09:00AM-05:00PM-06:00PM", ErrCodeMalformedClock},
		{"-05:00PM", ErrCodeMalformedClock},
		{"", ErrCodeEmptyInput},
		{"9:00AM-13:00PM", ErrCodeOutOfRangeField},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseClockRange(tt.input)
			require.Error(t, err)
			assert.True(t, HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestParseClockStart(t *testing.T) {
	ct, err := ParseClockStart("9:15")
	require.NoError(t, err)
	assert.Equal(t, MeridiemAM, ct.Meridiem)
	assert.Equal(t, 9*60+15, ct.MinuteOfDay())

	for _, input := range []string{"9:00PM", "9:00am"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseClockStart(input)
			require.Error(t, err)
			assert.True(t, HasCode(err, ErrCodeMalformedClock), "got %v", err)
			assert.Contains(t, err.Error(), "must not specify AM/PM")
		})
	}
}
