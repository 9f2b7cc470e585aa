package series

import (
	"context"
	"fmt"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
)

func (*Repository) CreateSeries(ctx context.Context, q database.Queryable, info *model.SeriesCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.ClassesTable).
		Columns(
			"user_id",
			"title",
			"subtitle",
			"description",
			"max_participants",
			"duration",
			"level",
			"meeting_link",
			"start_date",
			"start_time",
			"is_recurring",
			"recurrence_type",
			"recurring_days",
			"recurring_interval",
			"recurring_end_date",
			"reminder_enabled",
			"reminder_minutes_before",
			"is_active",
		).
		Values(
			info.OwnerID,
			info.Title,
			info.Subtitle,
			info.Description,
			info.Capacity,
			info.DurationMinutes,
			info.Level,
			info.MeetingLink,
			info.StartDate,
			info.StartTime,
			info.IsRecurring,
			string(info.RecurrenceType),
			marshalRecurringDays(info.RecurringDays),
			info.RecurringInterval,
			info.RecurringEndDate,
			info.ReminderEnabled,
			info.ReminderMinutesBefore,
			info.IsActive,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
