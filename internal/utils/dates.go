// Package utils holds date arithmetic shared by the calendar and booking
// code. All calendar math works on UTC midnights; a "day" is always a
// time.Time truncated with DateOnly.
package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t.UTC(), nil
}

// FormatDate renders a time as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly truncates a time to its UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC date.
func Today() time.Time {
	return DateOnly(time.Now())
}

// DaysBetween returns the number of whole days from a to b. Negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// EachDay calls fn for every date in the inclusive range [from, to].
func EachDay(from, to time.Time, fn func(day time.Time)) {
	for d := DateOnly(from); !d.After(DateOnly(to)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// EachNight calls fn for every night of a stay, i.e. every date in the
// half-open range [checkIn, checkOut). The checkout day is excluded.
func EachNight(checkIn, checkOut time.Time, fn func(day time.Time)) {
	for d := DateOnly(checkIn); d.Before(DateOnly(checkOut)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
