package series

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
)

func (*Repository) GetSeriesByID(ctx context.Context, q database.Queryable, id int64) (*model.Series, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	var dto seriesDTO
	if err := q.Get(ctx, &dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToSeries(&dto)
}

func (*Repository) GetSeriesByOwner(ctx context.Context, q database.Queryable, ownerID int64) ([]*model.Series, error) {
	qb := baseQuery.
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC")

	return selectSeries(ctx, q, qb)
}

// GetCandidateSeries returns the series that could produce occurrences
// inside the filter window: active, and either a one-shot anchored in
// the window or a recurring series whose end date does not precede it.
func (*Repository) GetCandidateSeries(ctx context.Context, q database.Queryable, filter model.InstancesFilter) ([]*model.Series, error) {
	qb := baseQuery.
		Where(sq.Eq{"is_active": true}).
		Where(sq.Or{
			sq.And{
				sq.GtOrEq{"start_date": filter.From},
				sq.LtOrEq{"start_date": filter.To},
			},
			sq.And{
				sq.Eq{"is_recurring": true},
				sq.Or{
					sq.Eq{"recurring_end_date": nil},
					sq.GtOrEq{"recurring_end_date": filter.From},
				},
			},
		})

	if filter.OwnerID != 0 {
		qb = qb.Where(sq.Eq{"user_id": filter.OwnerID})
	}

	return selectSeries(ctx, q, qb)
}

// GetReminderSeries returns the active series with reminders enabled
// whose recurrence has not ended before the given date.
func (*Repository) GetReminderSeries(ctx context.Context, q database.Queryable, today time.Time) ([]*model.Series, error) {
	qb := baseQuery.
		Where(sq.Eq{"is_active": true}).
		Where(sq.Eq{"reminder_enabled": true}).
		Where(sq.Or{
			sq.Eq{"recurring_end_date": nil},
			sq.GtOrEq{"recurring_end_date": today},
		})

	return selectSeries(ctx, q, qb)
}

func selectSeries(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.Series, error) {
	var dtos []*seriesDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Series, len(dtos))
	for i, d := range dtos {
		s, err := mapToSeries(d)
		if err != nil {
			return nil, err
		}
		res[i] = s
	}

	return res, nil
}
