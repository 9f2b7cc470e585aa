package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classbook/classbook-backend/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func overlaySeries() *model.Series {
	return &model.Series{
		ID: 7,
		SeriesCreate: model.SeriesCreate{
			OwnerID:         3,
			Title:           "Hatha Basics",
			StartDate:       date(2024, time.April, 1),
			StartTime:       "10:00",
			DurationMinutes: 60,
			IsRecurring:     true,
			RecurrenceType:  model.RecurrenceDaily,
		},
	}
}

func overlayDates() []time.Time {
	return []time.Time{
		date(2024, time.April, 1),
		date(2024, time.April, 2),
		date(2024, time.April, 3),
	}
}

func TestApplyNoExceptions(t *testing.T) {
	s := overlaySeries()
	got := Apply(overlayDates(), s, nil)

	require.Len(t, got, 3)
	for i, occ := range got {
		assert.Equal(t, overlayDates()[i], occ.Date)
		assert.Equal(t, "10:00", occ.StartTime)
		assert.Equal(t, "11:00", occ.EndTime)
		assert.Equal(t, 60, occ.DurationMinutes)
		assert.False(t, occ.IsException)
		assert.Equal(t, OccurrenceID(7, occ.Date), occ.ID)
		assert.Same(t, s, occ.Series)
	}
}

func TestApplyCancelledOmitsExactlyOneDate(t *testing.T) {
	exceptions := ExceptionsByDate([]*model.Exception{{
		SeriesID: 7,
		Date:     date(2024, time.April, 2),
		Type:     model.ExceptionCancelled,
		Reason:   "instructor away",
	}})

	got := Apply(overlayDates(), overlaySeries(), exceptions)

	require.Len(t, got, 2)
	assert.Equal(t, date(2024, time.April, 1), got[0].Date)
	assert.Equal(t, date(2024, time.April, 3), got[1].Date)
	assert.False(t, got[0].IsException)
	assert.False(t, got[1].IsException)
}

func TestApplyRescheduledReplacesStartTime(t *testing.T) {
	exceptions := ExceptionsByDate([]*model.Exception{{
		SeriesID:     7,
		Date:         date(2024, time.April, 2),
		Type:         model.ExceptionRescheduled,
		NewStartTime: strPtr("18:30"),
		Reason:       "moved to evening",
	}})

	got := Apply(overlayDates(), overlaySeries(), exceptions)
	require.Len(t, got, 3)

	assert.Equal(t, "18:30", got[1].StartTime)
	assert.Equal(t, "19:30", got[1].EndTime)
	assert.Equal(t, 60, got[1].DurationMinutes, "duration stays unless overridden")
	assert.True(t, got[1].IsException)
	assert.Equal(t, "moved to evening", got[1].ExceptionReason)

	// Neighbours untouched.
	assert.Equal(t, "10:00", got[0].StartTime)
	assert.Equal(t, "10:00", got[2].StartTime)
}

func TestApplyModifiedOverridesPresentFieldsOnly(t *testing.T) {
	tests := []struct {
		name         string
		exc          *model.Exception
		wantStart    string
		wantDuration int
	}{
		{
			name: "both fields",
			exc: &model.Exception{
				Type:               model.ExceptionModified,
				NewStartTime:       strPtr("11:15"),
				NewDurationMinutes: intPtr(90),
			},
			wantStart:    "11:15",
			wantDuration: 90,
		},
		{
			name: "duration only",
			exc: &model.Exception{
				Type:               model.ExceptionModified,
				NewDurationMinutes: intPtr(30),
			},
			wantStart:    "10:00",
			wantDuration: 30,
		},
		{
			name:         "no overrides",
			exc:          &model.Exception{Type: model.ExceptionModified},
			wantStart:    "10:00",
			wantDuration: 60,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.exc.SeriesID = 7
			tc.exc.Date = date(2024, time.April, 2)

			got := Apply(overlayDates(), overlaySeries(), ExceptionsByDate([]*model.Exception{tc.exc}))
			require.Len(t, got, 3)

			assert.Equal(t, tc.wantStart, got[1].StartTime)
			assert.Equal(t, tc.wantDuration, got[1].DurationMinutes)
			assert.True(t, got[1].IsException)
		})
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	exceptions := ExceptionsByDate([]*model.Exception{{
		SeriesID:     7,
		Date:         date(2024, time.April, 1),
		Type:         model.ExceptionRescheduled,
		NewStartTime: strPtr("23:00"),
	}})

	got := Apply(overlayDates(), overlaySeries(), exceptions)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Date.Before(got[i].Date))
	}
}

func TestOccursOn(t *testing.T) {
	end := date(2024, time.June, 30)

	weekly := overlaySeries()
	weekly.RecurrenceType = model.RecurrenceWeekly
	weekly.RecurringDays = []int{1, 3}
	weekly.RecurringEndDate = &end

	assert.True(t, OccursOn(weekly, date(2024, time.April, 1)))  // Monday
	assert.True(t, OccursOn(weekly, date(2024, time.April, 3)))  // Wednesday
	assert.False(t, OccursOn(weekly, date(2024, time.April, 2))) // Tuesday
	assert.False(t, OccursOn(weekly, date(2024, time.March, 25)), "before anchor")
	assert.False(t, OccursOn(weekly, date(2024, time.July, 1)), "past end date")

	monthly := overlaySeries()
	monthly.RecurrenceType = model.RecurrenceMonthly
	monthly.StartDate = date(2024, time.January, 15)

	assert.True(t, OccursOn(monthly, date(2024, time.March, 15)))
	assert.False(t, OccursOn(monthly, date(2024, time.March, 14)))

	singleShot := overlaySeries()
	singleShot.IsRecurring = false

	assert.True(t, OccursOn(singleShot, date(2024, time.April, 1)))
	assert.False(t, OccursOn(singleShot, date(2024, time.April, 2)))
}
