package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		d, err := ParseDate("2025-06-10")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseDate("10/06/2025")
		assert.Error(t, err)

		_, err = ParseDate("")
		assert.Error(t, err)
	})
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2025-08-01")
	b, _ := ParseDate("2025-08-05")

	assert.Equal(t, 4, DaysBetween(a, b))
	assert.Equal(t, -4, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestEachDay(t *testing.T) {
	from, _ := ParseDate("2025-07-30")
	to, _ := ParseDate("2025-08-02")

	var days []string
	EachDay(from, to, func(d time.Time) {
		days = append(days, FormatDate(d))
	})
	// Inclusive of both endpoints, crossing the month boundary.
	assert.Equal(t, []string{"2025-07-30", "2025-07-31", "2025-08-01", "2025-08-02"}, days)
}

func TestEachNight(t *testing.T) {
	checkIn, _ := ParseDate("2025-09-01")
	checkOut, _ := ParseDate("2025-09-04")

	var nights []string
	EachNight(checkIn, checkOut, func(d time.Time) {
		nights = append(nights, FormatDate(d))
	})
	// Checkout day excluded.
	assert.Equal(t, []string{"2025-09-01", "2025-09-02", "2025-09-03"}, nights)

	nights = nil
	EachNight(checkIn, checkIn, func(d time.Time) {
		nights = append(nights, FormatDate(d))
	})
	assert.Empty(t, nights)
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 6, 10, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}
