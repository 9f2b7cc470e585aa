package recurrence

import (
	"fmt"
	"time"

	"github.com/classbook/classbook-backend/internal/model"
)

// OccurrenceID builds the synthetic identifier of a derived occurrence.
func OccurrenceID(seriesID int64, date time.Time) string {
	return fmt.Sprintf("%v_%v", seriesID, FormatDate(date))
}

// Apply merges raw occurrence dates with the exceptions of a series,
// keyed by formatted date. Cancelled dates are omitted entirely;
// rescheduled and modified dates keep their position but carry the
// overridden start time and/or duration. Output preserves the order of
// the input dates: an exception never moves an occurrence to a
// different date.
func Apply(dates []time.Time, s *model.Series, exceptions map[string]*model.Exception) []*model.Occurrence {
	res := make([]*model.Occurrence, 0, len(dates))

	for _, d := range dates {
		exc := exceptions[FormatDate(d)]
		if exc != nil && exc.Type == model.ExceptionCancelled {
			continue
		}

		occ := &model.Occurrence{
			ID:              OccurrenceID(s.ID, d),
			SeriesID:        s.ID,
			OwnerID:         s.OwnerID,
			Title:           s.Title,
			Subtitle:        s.Subtitle,
			Description:     s.Description,
			Capacity:        s.Capacity,
			DurationMinutes: s.DurationMinutes,
			Level:           s.Level,
			MeetingLink:     s.MeetingLink,
			Date:            d,
			DayOfWeek:       DayOfWeek(d),
			StartTime:       s.StartTime,
			IsRecurring:     s.IsRecurring,
			Series:          s,
		}

		if exc != nil {
			occ.IsException = true
			occ.ExceptionReason = exc.Reason

			// Fields without an override keep the series default.
			if exc.NewStartTime != nil {
				occ.StartTime = *exc.NewStartTime
			}
			if exc.NewDurationMinutes != nil {
				occ.DurationMinutes = *exc.NewDurationMinutes
			}
		}

		if end, err := EndTime(occ.StartTime, occ.DurationMinutes); err == nil {
			occ.EndTime = end
		}

		res = append(res, occ)
	}

	return res
}

// ExceptionsByDate groups a series' exceptions for O(1) lookup during
// overlay.
func ExceptionsByDate(exceptions []*model.Exception) map[string]*model.Exception {
	res := make(map[string]*model.Exception, len(exceptions))
	for _, e := range exceptions {
		res[FormatDate(e.Date)] = e
	}

	return res
}
