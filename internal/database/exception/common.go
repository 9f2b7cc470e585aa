package exception

import (
	"github.com/classbook/classbook-backend/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"class_id",
		"exception_date",
		"exception_type",
		"new_start_time",
		"new_duration",
		"reason",
	).
	From(database.ExceptionsTable)
