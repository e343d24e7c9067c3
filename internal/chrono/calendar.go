package chrono

// Calendar functions for the proleptic Gregorian calendar.
//
// Day numbers count days since 1970-01-01. The civil conversions follow
// the era-based algorithm (400-year eras of 146097 days), which is exact
// over the whole int64 day range used by Instant.

// IsLeapYear reports whether year has a February 29th: divisible by 4,
// except centuries, unless also divisible by 400.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the length of month in year, or 0 if month is not 1-12.
func DaysInMonth(year int64, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

// ValidDate reports whether (year, month, day) names a real calendar day.
func ValidDate(year int64, month, day int) bool {
	return day >= 1 && day <= DaysInMonth(year, month)
}

// DaysFromCivil returns the day number of a valid calendar date.
// The caller must have validated the date and bounded the year; see MaxYear.
func DaysFromCivil(year int64, month, day int) int64 {
	if month <= 2 {
		year--
	}
	era := floorDiv(year, 400)
	yoe := year - era*400
	mp := int64((month + 9) % 12)
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// CivilFromDays is the inverse of DaysFromCivil.
func CivilFromDays(days int64) (year int64, month, day int) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	year = yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		month = int(mp + 3)
	} else {
		month = int(mp - 9)
	}
	if month <= 2 {
		year++
	}
	return year, month, day
}

// Year bounds accepted by normalization. Every date inside them maps to a
// day number whose seconds still fit an int64 Instant.
const (
	MaxYear int64 = 292_000_000_000
	MinYear int64 = -292_000_000_000
)

// ToCalendar renders an instant as calendar fields in the given offset.
func ToCalendar(i Instant, off Offset) CalendarFields {
	days := floorDiv(i.Seconds, SecondsPerDay)
	sod := int(i.Seconds-days*SecondsPerDay) + off.Seconds

	// |offset| <= 24h, so one carry in either direction is enough.
	if sod < 0 {
		days--
		sod += SecondsPerDay
	} else if sod >= SecondsPerDay {
		days++
		sod -= SecondsPerDay
	}

	y, m, d := CivilFromDays(days)
	return CalendarFields{
		Year:       y,
		Month:      m,
		Day:        d,
		Hour:       sod / SecondsPerHour,
		Minute:     sod % SecondsPerHour / SecondsPerMinute,
		Second:     sod % SecondsPerMinute,
		Nanosecond: int(i.Nanos),
		Offset:     off,
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
