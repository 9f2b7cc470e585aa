package exception

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
)

// GetExceptions returns the exceptions of the given series whose date
// falls inside the filter window, ordered by date.
func (*Repository) GetExceptions(ctx context.Context, q database.Queryable, filter model.ExceptionsFilter) ([]*model.Exception, error) {
	if len(filter.SeriesIDs) == 0 {
		return nil, nil
	}

	qb := baseQuery.
		Where(sq.Eq{"class_id": filter.SeriesIDs}).
		OrderBy("exception_date")

	if !filter.From.IsZero() {
		qb = qb.Where(sq.GtOrEq{"exception_date": filter.From})
	}
	if !filter.To.IsZero() {
		qb = qb.Where(sq.LtOrEq{"exception_date": filter.To})
	}

	var dtos []*exceptionDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Exception, len(dtos))
	for i, d := range dtos {
		res[i] = mapToException(d)
	}

	return res, nil
}
