// Package recurrence holds the pure scheduling core: calendar
// arithmetic, expansion of a series into raw occurrence dates over a
// window, and the merge of per-date exceptions into final occurrences.
// Nothing here touches storage; every function is deterministic in its
// inputs.
package recurrence

import (
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateFormat)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}

	return t, nil
}

// DateOf truncates a timestamp to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayOfWeek returns the weekday index, 0 = Sunday, consistent with the
// encoding of Series.RecurringDays.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// AddDays advances a date by n calendar days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// AddMonthsClamped advances a date by n months keeping the day of
// month, clamped to the last day of the target month when the original
// day does not exist there (Jan 31 + 1 month is Feb 28/29, never Mar 2).
func AddMonthsClamped(date time.Time, n int) time.Time {
	y, m, d := date.Date()

	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// ParseTimeOfDay parses "HH:MM" (or "HH:MM:SS", seconds ignored) into
// hours and minutes.
func ParseTimeOfDay(s string) (int, int, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, 0, fmt.Errorf("parse time of day %q", s)
		}
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("time of day %q out of range", s)
	}

	return h, m, nil
}

// EndTime computes the end of an occurrence from its start time and
// duration. Arithmetic wraps on the 24h clock and never carries into a
// new date.
func EndTime(startTime string, durationMinutes int) (string, error) {
	h, m, err := ParseTimeOfDay(startTime)
	if err != nil {
		return "", err
	}

	total := (h*60 + m + durationMinutes) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}

	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// At combines a calendar date with an "HH:MM" time of day into a single
// timestamp in the given location.
func At(date time.Time, timeOfDay string, loc *time.Location) (time.Time, error) {
	h, m, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}

	y, mo, d := date.Date()
	return time.Date(y, mo, d, h, m, 0, 0, loc), nil
}
