package domain

import (
	"fmt"
	"time"
)

// DayFormat is the canonical layout for calendar day keys.
const DayFormat = "2006-01-02"

// Day is a calendar date in the user's local time zone, formatted as
// "YYYY-MM-DD". Habit logs are keyed by Day; timestamps cross the storage
// boundary in UTC and are converted here.
type Day string

// DayOf returns the local calendar day a instant falls on.
func DayOf(t time.Time) Day {
	return Day(t.Local().Format(DayFormat))
}

// Today returns the current local calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay validates a user-supplied day string.
func ParseDay(s string) (Day, error) {
	if _, err := time.ParseInLocation(DayFormat, s, time.Local); err != nil {
		return "", fmt.Errorf("invalid day %q (want YYYY-MM-DD): %w", s, err)
	}
	return Day(s), nil
}

// Time returns midnight local time on the day.
func (d Day) Time() time.Time {
	t, err := time.ParseInLocation(DayFormat, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d falls strictly before other.
// Lexicographic comparison is correct for the fixed layout.
func (d Day) Before(other Day) bool {
	return string(d) < string(other)
}

// After reports whether d falls strictly after other.
func (d Day) After(other Day) bool {
	return string(d) > string(other)
}
