package series

import (
	"github.com/classbook/classbook-backend/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
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
	From(database.ClassesTable)
