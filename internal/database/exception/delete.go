package exception

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
)

func (*Repository) DeleteException(ctx context.Context, q database.Queryable, seriesID int64, date time.Time) error {
	qb := database.PSQL.
		Delete(database.ExceptionsTable).
		Where(sq.Eq{"class_id": seriesID}).
		Where(sq.Eq{"exception_date": date})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
