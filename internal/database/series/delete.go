package series

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/classbook/classbook-backend/internal/database"
)

// DeleteSeries removes the series row; its exceptions go with it via
// the ON DELETE CASCADE on class_exceptions.class_id.
func (*Repository) DeleteSeries(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Delete(database.ClassesTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
