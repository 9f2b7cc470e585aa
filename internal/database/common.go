package database

import sq "github.com/Masterminds/squirrel"

// PSQL - query builder с долларовыми плейсхолдерами postgres.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	ClassesTable    = "classes"
	ExceptionsTable = "class_exceptions"
	UsersTable      = "users"
	BookingsTable   = "bookings"
)
