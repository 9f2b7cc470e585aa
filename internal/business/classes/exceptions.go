package classes

import (
	"context"
	"fmt"
	"time"

	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
	"github.com/classbook/classbook-backend/internal/pkg/validator"
)

// UpsertException stores a direct per-date override for a series. An
// existing override on the same date is replaced, never duplicated.
func (s *Service) UpsertException(ctx context.Context, exc *model.Exception) error {
	v := validator.New()

	v.Check(!exc.Date.IsZero(), "exception_date", "exception date must be provided")

	switch exc.Type {
	case model.ExceptionCancelled:
	case model.ExceptionRescheduled:
		v.Check(exc.NewStartTime != nil, "new_start_time", "rescheduling requires a new start time")
	case model.ExceptionModified:
		v.Check(exc.NewStartTime != nil || exc.NewDurationMinutes != nil, "exception", "a modification must override the start time or the duration")
	default:
		v.AddError("exception_type", "must be one of: cancelled, rescheduled, modified")
	}

	if exc.NewStartTime != nil {
		if _, _, err := recurrence.ParseTimeOfDay(*exc.NewStartTime); err != nil {
			v.AddError("new_start_time", "start time must be HH:MM")
		}
	}
	if exc.NewDurationMinutes != nil && *exc.NewDurationMinutes <= 0 {
		v.AddError("new_duration", "duration must be positive")
	}

	if !v.Valid() {
		return &model.ValidationError{Fields: v.Errors}
	}

	if _, err := s.seriesRepository.GetSeriesByID(ctx, s.db, exc.SeriesID); err != nil {
		return err
	}

	exc.Date = recurrence.DateOf(exc.Date)
	if err := s.exceptionsRepository.UpsertException(ctx, s.db, exc); err != nil {
		return fmt.Errorf("exceptionsRepository.UpsertException: %w", err)
	}

	return nil
}

func (s *Service) DeleteException(ctx context.Context, seriesID int64, date time.Time) error {
	return s.exceptionsRepository.DeleteException(ctx, s.db, seriesID, recurrence.DateOf(date))
}
