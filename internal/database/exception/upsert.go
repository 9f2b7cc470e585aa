package exception

import (
	"context"
	"fmt"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
)

// UpsertException inserts the exception or, when one already exists for
// the same (series, date), replaces its type and overrides. A duplicate
// is never a hard failure.
func (*Repository) UpsertException(ctx context.Context, q database.Queryable, e *model.Exception) error {
	qb := database.PSQL.
		Insert(database.ExceptionsTable).
		Columns(
			"class_id",
			"exception_date",
			"exception_type",
			"new_start_time",
			"new_duration",
			"reason",
		).
		Values(
			e.SeriesID,
			e.Date,
			string(e.Type),
			e.NewStartTime,
			e.NewDurationMinutes,
			e.Reason,
		).
		Suffix(`on conflict (class_id, exception_date) do update set
			exception_type = excluded.exception_type,
			new_start_time = excluded.new_start_time,
			new_duration = excluded.new_duration,
			reason = excluded.reason`)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
