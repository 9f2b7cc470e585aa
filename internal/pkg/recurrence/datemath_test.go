package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-05", FormatDate(date(2024, time.January, 5)))
	assert.Equal(t, "2024-12-31", FormatDate(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), d)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestDayOfWeek(t *testing.T) {
	// 2024-01-07 was a Sunday.
	assert.Equal(t, 0, DayOfWeek(date(2024, time.January, 7)))
	assert.Equal(t, 1, DayOfWeek(date(2024, time.January, 8)))
	assert.Equal(t, 6, DayOfWeek(date(2024, time.January, 13)))
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 18, 45, 12, 0, time.UTC)
	assert.Equal(t, date(2024, time.March, 15), DateOf(ts))
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{"plain month", date(2024, time.January, 15), 1, date(2024, time.February, 15)},
		{"leap year clamp", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"non leap clamp", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamp to april", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"two months keeps day", date(2024, time.January, 31), 2, date(2024, time.March, 31)},
		{"year rollover", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"full year", date(2024, time.June, 10), 12, date(2025, time.June, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonthsClamped(tc.from, tc.months))
		})
	}
}

func TestEndTime(t *testing.T) {
	tests := []struct {
		start    string
		duration int
		want     string
	}{
		{"09:00", 60, "10:00"},
		{"09:30", 45, "10:15"},
		{"23:30", 45, "00:15"},
		{"23:00", 60, "00:00"},
		{"10:15:00", 30, "10:45"},
		{"00:00", 24 * 60, "00:00"},
	}

	for _, tc := range tests {
		got, err := EndTime(tc.start, tc.duration)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "start %v + %v min", tc.start, tc.duration)
	}

	_, err := EndTime("25:00", 30)
	assert.Error(t, err)
	_, err = EndTime("morning", 30)
	assert.Error(t, err)
}

func TestAt(t *testing.T) {
	ts, err := At(date(2024, time.May, 3), "18:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 3, 18, 30, 0, 0, time.UTC), ts)

	_, err = At(date(2024, time.May, 3), "", time.UTC)
	assert.Error(t, err)
}
