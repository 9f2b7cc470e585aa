package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classbook/classbook-backend/internal/model"
)

func weeklySeries(start time.Time, days []int, interval int) *model.Series {
	return &model.Series{
		ID: 1,
		SeriesCreate: model.SeriesCreate{
			Title:             "Vinyasa Flow",
			StartDate:         start,
			StartTime:         "09:00",
			DurationMinutes:   60,
			IsRecurring:       true,
			RecurrenceType:    model.RecurrenceWeekly,
			RecurringDays:     days,
			RecurringInterval: interval,
		},
	}
}

func TestExpandNonRecurring(t *testing.T) {
	s := &model.Series{
		ID: 2,
		SeriesCreate: model.SeriesCreate{
			StartDate: date(2024, time.March, 10),
		},
	}

	assert.Equal(t,
		[]time.Time{date(2024, time.March, 10)},
		Expand(s, date(2024, time.March, 1), date(2024, time.March, 31)),
	)
	assert.Empty(t, Expand(s, date(2024, time.March, 11), date(2024, time.March, 31)))
	assert.Empty(t, Expand(s, date(2024, time.February, 1), date(2024, time.March, 9)))
}

func TestExpandStartAfterRange(t *testing.T) {
	s := weeklySeries(date(2024, time.June, 1), []int{1}, 1)
	assert.Empty(t, Expand(s, date(2024, time.January, 1), date(2024, time.January, 31)))
}

func TestExpandWeeklyMonWedFri(t *testing.T) {
	// 2024-01-01 was a Monday.
	s := weeklySeries(date(2024, time.January, 1), []int{1, 3, 5}, 1)

	got := Expand(s, date(2024, time.January, 1), date(2024, time.January, 14))
	require.Len(t, got, 6)

	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 5),
		date(2024, time.January, 8),
		date(2024, time.January, 10),
		date(2024, time.January, 12),
	}
	assert.Equal(t, want, got)

	for i, d := range got {
		assert.Contains(t, []int{1, 3, 5}, DayOfWeek(d))
		if i > 0 {
			assert.True(t, got[i-1].Before(d), "dates must be strictly ascending")
		}
	}
}

func TestExpandWeeklyFastForward(t *testing.T) {
	// Window starts long after the anchor; emitted dates must still be
	// rule-aligned.
	s := weeklySeries(date(2024, time.January, 1), []int{2, 4}, 1) // Tue/Thu... anchored Monday

	got := Expand(s, date(2024, time.March, 4), date(2024, time.March, 10))
	want := []time.Time{
		date(2024, time.March, 5), // Tuesday
		date(2024, time.March, 7), // Thursday
	}
	assert.Equal(t, want, got)
}

func TestExpandWeeklyIntervalBlocks(t *testing.T) {
	// Every second week, Mondays only.
	s := weeklySeries(date(2024, time.January, 1), []int{1}, 2)

	got := Expand(s, date(2024, time.January, 1), date(2024, time.February, 4))
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 15),
		date(2024, time.January, 29),
	}
	assert.Equal(t, want, got)
}

func TestExpandWeeklyNoDaysFallback(t *testing.T) {
	// Legacy rows without a day set degrade to +7*interval days.
	s := weeklySeries(date(2024, time.January, 1), nil, 1)

	got := Expand(s, date(2024, time.January, 1), date(2024, time.January, 21))
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
	}
	assert.Equal(t, want, got)
}

func TestExpandDailyInterval(t *testing.T) {
	s := weeklySeries(date(2024, time.January, 1), nil, 3)
	s.RecurrenceType = model.RecurrenceDaily

	got := Expand(s, date(2024, time.January, 2), date(2024, time.January, 11))
	want := []time.Time{
		date(2024, time.January, 4),
		date(2024, time.January, 7),
		date(2024, time.January, 10),
	}
	assert.Equal(t, want, got)
}

func TestExpandCustomIsEveryNDays(t *testing.T) {
	s := weeklySeries(date(2024, time.January, 1), nil, 10)
	s.RecurrenceType = model.RecurrenceCustom

	got := Expand(s, date(2024, time.January, 1), date(2024, time.January, 31))
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 11),
		date(2024, time.January, 21),
		date(2024, time.January, 31),
	}
	assert.Equal(t, want, got)
}

func TestExpandMonthlyClamps(t *testing.T) {
	s := weeklySeries(date(2024, time.January, 31), nil, 1)
	s.RecurrenceType = model.RecurrenceMonthly

	got := Expand(s, date(2024, time.January, 1), date(2024, time.March, 31))
	require.NotEmpty(t, got)
	assert.Equal(t, date(2024, time.January, 31), got[0])
	// Leap year: the February occurrence clamps to the 29th, never
	// rolling over into March 2nd.
	assert.Equal(t, date(2024, time.February, 29), got[1])

	nonLeap := weeklySeries(date(2023, time.January, 31), nil, 1)
	nonLeap.RecurrenceType = model.RecurrenceMonthly

	got = Expand(nonLeap, date(2023, time.February, 1), date(2023, time.February, 28))
	assert.Equal(t, []time.Time{date(2023, time.February, 28)}, got)
}

func TestExpandHonorsRecurringEndDate(t *testing.T) {
	end := date(2024, time.January, 8)
	s := weeklySeries(date(2024, time.January, 1), []int{1}, 1)
	s.RecurringEndDate = &end

	got := Expand(s, date(2024, time.January, 1), date(2024, time.February, 28))
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
	}
	assert.Equal(t, want, got)
}

func TestExpandUnknownTypeEmitsAnchorOnce(t *testing.T) {
	s := weeklySeries(date(2024, time.January, 5), nil, 1)
	s.RecurrenceType = model.RecurrenceNone

	got := Expand(s, date(2024, time.January, 1), date(2024, time.January, 31))
	assert.Equal(t, []time.Time{date(2024, time.January, 5)}, got)

	assert.Empty(t, Expand(s, date(2024, time.January, 6), date(2024, time.January, 31)))
}

func TestExpandIsPure(t *testing.T) {
	s := weeklySeries(date(2024, time.January, 1), []int{1, 3, 5}, 1)

	first := Expand(s, date(2024, time.January, 1), date(2024, time.March, 1))
	second := Expand(s, date(2024, time.January, 1), date(2024, time.March, 1))
	assert.Equal(t, first, second)
}
