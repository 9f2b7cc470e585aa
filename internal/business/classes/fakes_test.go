package classes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
)

// fakeDB satisfies database.PGX through embedding; only BeginTx is
// implemented, the repositories below never issue real queries.
type fakeDB struct {
	database.PGX
}

func (f *fakeDB) BeginTx(_ context.Context, _ *pgx.TxOptions) (database.Tx, error) {
	return &fakeTx{}, nil
}

type fakeTx struct {
	database.Queryable
}

func (t *fakeTx) Commit(_ context.Context) error   { return nil }
func (t *fakeTx) Rollback(_ context.Context) error { return nil }

type fakeSeriesRepo struct {
	seq            int64
	series         map[int64]*model.Series
	candidateCalls int
	failCreate     bool
}

func newFakeSeriesRepo() *fakeSeriesRepo {
	return &fakeSeriesRepo{series: make(map[int64]*model.Series)}
}

func (r *fakeSeriesRepo) add(s *model.Series) *model.Series {
	if s.ID == 0 {
		r.seq++
		s.ID = r.seq
	} else if s.ID > r.seq {
		r.seq = s.ID
	}
	r.series[s.ID] = s
	return s
}

func (r *fakeSeriesRepo) CreateSeries(_ context.Context, _ database.Queryable, info *model.SeriesCreate) (int64, error) {
	if r.failCreate {
		return 0, errors.New("insert failed")
	}

	cp := *info
	created := r.add(&model.Series{SeriesCreate: cp})
	return created.ID, nil
}

func (r *fakeSeriesRepo) GetSeriesByID(_ context.Context, _ database.Queryable, id int64) (*model.Series, error) {
	s, ok := r.series[id]
	if !ok {
		return nil, model.ErrNoRecord
	}

	cp := *s
	return &cp, nil
}

func (r *fakeSeriesRepo) GetSeriesByOwner(_ context.Context, _ database.Queryable, ownerID int64) ([]*model.Series, error) {
	var res []*model.Series
	for _, s := range r.series {
		if s.OwnerID == ownerID {
			cp := *s
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeSeriesRepo) GetCandidateSeries(_ context.Context, _ database.Queryable, filter model.InstancesFilter) ([]*model.Series, error) {
	r.candidateCalls++

	var res []*model.Series
	for _, s := range r.series {
		if !s.IsActive {
			continue
		}
		if filter.OwnerID != 0 && s.OwnerID != filter.OwnerID {
			continue
		}

		inWindow := !s.StartDate.Before(filter.From) && !s.StartDate.After(filter.To)
		recurringAlive := s.IsRecurring && (s.RecurringEndDate == nil || !s.RecurringEndDate.Before(filter.From))
		if inWindow || recurringAlive {
			cp := *s
			res = append(res, &cp)
		}
	}

	return res, nil
}

func (r *fakeSeriesRepo) UpdateSeries(_ context.Context, _ database.Queryable, s *model.Series) error {
	if _, ok := r.series[s.ID]; !ok {
		return model.ErrNoRecord
	}

	cp := *s
	r.series[s.ID] = &cp
	return nil
}

func (r *fakeSeriesRepo) SetRecurringEndDate(_ context.Context, _ database.Queryable, id int64, end time.Time) error {
	s, ok := r.series[id]
	if !ok {
		return model.ErrNoRecord
	}

	s.RecurringEndDate = &end
	return nil
}

func (r *fakeSeriesRepo) DeleteSeries(_ context.Context, _ database.Queryable, id int64) error {
	delete(r.series, id)
	return nil
}

type fakeExceptionsRepo struct {
	exceptions map[string]*model.Exception
	getCalls   int
}

func newFakeExceptionsRepo() *fakeExceptionsRepo {
	return &fakeExceptionsRepo{exceptions: make(map[string]*model.Exception)}
}

func excKey(seriesID int64, date time.Time) string {
	return fmt.Sprintf("%v_%v", seriesID, recurrence.FormatDate(date))
}

func (r *fakeExceptionsRepo) GetExceptions(_ context.Context, _ database.Queryable, filter model.ExceptionsFilter) ([]*model.Exception, error) {
	r.getCalls++

	ids := make(map[int64]struct{}, len(filter.SeriesIDs))
	for _, id := range filter.SeriesIDs {
		ids[id] = struct{}{}
	}

	var res []*model.Exception
	for _, e := range r.exceptions {
		if _, ok := ids[e.SeriesID]; !ok {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}

		cp := *e
		res = append(res, &cp)
	}

	return res, nil
}

func (r *fakeExceptionsRepo) UpsertException(_ context.Context, _ database.Queryable, e *model.Exception) error {
	cp := *e
	r.exceptions[excKey(e.SeriesID, e.Date)] = &cp
	return nil
}

func (r *fakeExceptionsRepo) DeleteException(_ context.Context, _ database.Queryable, seriesID int64, date time.Time) error {
	key := excKey(seriesID, date)
	if _, ok := r.exceptions[key]; !ok {
		return model.ErrNoRecord
	}

	delete(r.exceptions, key)
	return nil
}
