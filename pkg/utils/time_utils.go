package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// LocationOrUTC resolves an IANA timezone name, falling back to UTC when the
// name is empty or unknown (segment timezones come from user input).
func LocationOrUTC(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DateOnly truncates t to midnight UTC. All segment containment and plan-date
// comparisons run on date-only values.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TodayIn returns the current calendar date as seen in tz, as a date-only
// UTC value comparable with segment bounds.
func TodayIn(tzName string, now time.Time) time.Time {
	local := now.In(LocationOrUTC(tzName))
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween is the whole number of days from a to b (date-only, floor).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatClock renders minutes-since-midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
