package recurrence

import (
	"time"

	"github.com/classbook/classbook-backend/internal/model"
)

// OccursOn reports whether the given date is an occurrence day of the
// series by the per-type day check used by the reminder tick. Exceptions
// are not consulted here; the caller overlays them separately.
func OccursOn(s *model.Series, date time.Time) bool {
	date = DateOf(date)
	start := DateOf(s.StartDate)

	if !s.IsRecurring {
		return date.Equal(start)
	}

	if date.Before(start) {
		return false
	}
	if s.RecurringEndDate != nil && date.After(DateOf(*s.RecurringEndDate)) {
		return false
	}

	switch s.RecurrenceType {
	case model.RecurrenceDaily, model.RecurrenceCustom:
		return true
	case model.RecurrenceWeekly:
		if len(s.RecurringDays) == 0 {
			return true
		}
		wd := DayOfWeek(date)
		for _, d := range s.RecurringDays {
			if d == wd {
				return true
			}
		}
		return false
	case model.RecurrenceMonthly:
		return date.Day() == start.Day()
	default:
		return date.Equal(start)
	}
}
