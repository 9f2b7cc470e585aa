package series

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
)

func (*Repository) UpdateSeries(ctx context.Context, q database.Queryable, s *model.Series) error {
	qb := database.PSQL.
		Update(database.ClassesTable).
		SetMap(map[string]interface{}{
			"title":                   s.Title,
			"subtitle":                s.Subtitle,
			"description":             s.Description,
			"max_participants":        s.Capacity,
			"duration":                s.DurationMinutes,
			"level":                   s.Level,
			"meeting_link":            s.MeetingLink,
			"start_date":              s.StartDate,
			"start_time":              s.StartTime,
			"is_recurring":            s.IsRecurring,
			"recurrence_type":         string(s.RecurrenceType),
			"recurring_days":          marshalRecurringDays(s.RecurringDays),
			"recurring_interval":      s.RecurringInterval,
			"recurring_end_date":      s.RecurringEndDate,
			"reminder_enabled":        s.ReminderEnabled,
			"reminder_minutes_before": s.ReminderMinutesBefore,
			"is_active":               s.IsActive,
		}).
		Where(sq.Eq{"id": s.ID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// SetRecurringEndDate truncates a series; used by the future-split.
func (*Repository) SetRecurringEndDate(ctx context.Context, q database.Queryable, id int64, end time.Time) error {
	qb := database.PSQL.
		Update(database.ClassesTable).
		Set("recurring_end_date", end).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
