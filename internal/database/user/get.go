package user

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
)

func (*Repository) GetUserByID(ctx context.Context, q database.Queryable, id int64) (*model.User, error) {
	users, err := getUsers(ctx, q, baseQuery.Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, model.ErrNoRecord
	}

	return users[0], nil
}

// GetClassParticipants returns the users with a confirmed booking for
// the given series occurrence date.
func (*Repository) GetClassParticipants(ctx context.Context, q database.Queryable, seriesID int64, date time.Time) ([]*model.User, error) {
	qb := database.PSQL.
		Select(
			"u.id",
			"u.full_name",
			"u.email",
			"u.phone_number",
			"u.photo",
			"u.push_token",
			"u.notify",
		).
		From(database.UsersTable + " u").
		Join(database.BookingsTable + " b on b.user_id = u.id").
		Where(sq.Eq{"b.class_id": seriesID}).
		Where(sq.Eq{"b.class_date": date}).
		Where(sq.Eq{"b.status": "confirmed"})

	return getUsers(ctx, q, qb)
}

func getUsers(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.User, error) {
	var dtos []*userDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.User, len(dtos))
	for i, d := range dtos {
		res[i] = mapToUser(d)
	}

	return res, nil
}
