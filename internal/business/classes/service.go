package classes

import (
	"context"
	"time"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
)

// Service is the query and lifecycle surface over class series: it
// expands series into bookable occurrences for a window and applies
// structural edits (single instance, future split, whole series).
type Service struct {
	db                   database.PGX
	seriesRepository     seriesRepository
	exceptionsRepository exceptionsRepository
}

type seriesRepository interface {
	CreateSeries(ctx context.Context, q database.Queryable, info *model.SeriesCreate) (int64, error)
	GetSeriesByID(ctx context.Context, q database.Queryable, id int64) (*model.Series, error)
	GetSeriesByOwner(ctx context.Context, q database.Queryable, ownerID int64) ([]*model.Series, error)
	GetCandidateSeries(ctx context.Context, q database.Queryable, filter model.InstancesFilter) ([]*model.Series, error)
	UpdateSeries(ctx context.Context, q database.Queryable, s *model.Series) error
	SetRecurringEndDate(ctx context.Context, q database.Queryable, id int64, end time.Time) error
	DeleteSeries(ctx context.Context, q database.Queryable, id int64) error
}

type exceptionsRepository interface {
	GetExceptions(ctx context.Context, q database.Queryable, filter model.ExceptionsFilter) ([]*model.Exception, error)
	UpsertException(ctx context.Context, q database.Queryable, e *model.Exception) error
	DeleteException(ctx context.Context, q database.Queryable, seriesID int64, date time.Time) error
}

func NewService(db database.PGX, series seriesRepository, exceptions exceptionsRepository) *Service {
	return &Service{
		db:                   db,
		seriesRepository:     series,
		exceptionsRepository: exceptions,
	}
}

// SeriesWithExceptions pairs a series with its stored overrides, the
// shape the owner-facing listing returns.
type SeriesWithExceptions struct {
	Series     *model.Series
	Exceptions []*model.Exception
}
