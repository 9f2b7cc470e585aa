package classes

import (
	"sort"

	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
	"github.com/classbook/classbook-backend/internal/pkg/validator"
)

const defaultCancelReason = "Cancelled by instructor"

// validateSeries enforces the creation invariants. It is also run on
// the merged result of a whole-series update, so a patch cannot leave a
// row in a state creation would have rejected.
func validateSeries(info *model.SeriesCreate) *model.ValidationError {
	v := validator.New()

	v.Check(info.OwnerID != 0, "user_id", "owner must be provided")
	v.Check(info.Title != "", "title", "title must be provided")
	v.Check(!info.StartDate.IsZero(), "start_date", "start date must be provided")

	if info.StartTime == "" {
		v.AddError("start_time", "start time must be provided")
	} else if _, _, err := recurrence.ParseTimeOfDay(info.StartTime); err != nil {
		v.AddError("start_time", "start time must be HH:MM")
	}

	v.Check(info.Capacity > 0, "max_participants", "capacity must be positive")
	v.Check(info.DurationMinutes > 0, "duration", "duration must be positive")
	v.Check(info.ReminderMinutesBefore >= 0, "reminder_minutes_before", "reminder lead time must not be negative")

	if info.IsRecurring {
		switch info.RecurrenceType {
		case model.RecurrenceDaily, model.RecurrenceMonthly:
		case model.RecurrenceWeekly:
			v.Check(len(info.RecurringDays) != 0, "recurring_days", "weekly recurrence requires at least one weekday")
			for _, d := range info.RecurringDays {
				if d < 0 || d > 6 {
					v.AddError("recurring_days", "weekday indices must be between 0 and 6")
					break
				}
			}
		case model.RecurrenceCustom:
			v.Check(info.RecurringInterval >= 1, "recurring_interval", "custom recurrence requires an explicit day interval")
		default:
			v.AddError("recurrence_type", "unsupported recurrence type")
		}

		v.Check(info.RecurringInterval >= 0, "recurring_interval", "interval must not be negative")

		if info.RecurringEndDate != nil && !info.StartDate.IsZero() &&
			recurrence.DateOf(*info.RecurringEndDate).Before(recurrence.DateOf(info.StartDate)) {
			v.AddError("recurring_end_date", "end date must not precede the start date")
		}
	}

	if !v.Valid() {
		return &model.ValidationError{Fields: v.Errors}
	}

	return nil
}

func normalizeDays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[int]struct{}, len(days))
	res := make([]int, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		res = append(res, d)
	}

	sort.Ints(res)
	return res
}

// applyPatch merges a patch onto a series copy: nil fields keep the
// previous value.
func applyPatch(s model.SeriesCreate, p *model.SeriesPatch) model.SeriesCreate {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Subtitle != nil {
		s.Subtitle = *p.Subtitle
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Capacity != nil {
		s.Capacity = *p.Capacity
	}
	if p.DurationMinutes != nil {
		s.DurationMinutes = *p.DurationMinutes
	}
	if p.Level != nil {
		s.Level = *p.Level
	}
	if p.MeetingLink != nil {
		s.MeetingLink = *p.MeetingLink
	}
	if p.StartDate != nil {
		s.StartDate = recurrence.DateOf(*p.StartDate)
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.IsRecurring != nil {
		s.IsRecurring = *p.IsRecurring
	}
	if p.RecurrenceType != nil {
		s.RecurrenceType = *p.RecurrenceType
	}
	if p.RecurringDays != nil {
		s.RecurringDays = normalizeDays(p.RecurringDays)
	}
	if p.RecurringInterval != nil {
		s.RecurringInterval = *p.RecurringInterval
	}
	if p.RecurringEndDate != nil {
		end := recurrence.DateOf(*p.RecurringEndDate)
		s.RecurringEndDate = &end
	}
	if p.ReminderEnabled != nil {
		s.ReminderEnabled = *p.ReminderEnabled
	}
	if p.ReminderMinutesBefore != nil {
		s.ReminderMinutesBefore = *p.ReminderMinutesBefore
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}

	return s
}
