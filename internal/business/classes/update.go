package classes

import (
	"context"
	"fmt"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
)

// UpdateSeries applies one structural edit and returns the series the
// caller should continue working with: the new series for a future
// split, the updated row for a whole-series edit, the untouched row for
// a single-instance edit.
func (s *Service) UpdateSeries(ctx context.Context, id int64, upd *model.SeriesUpdate) (*model.Series, error) {
	existing, err := s.seriesRepository.GetSeriesByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	switch upd.Scope {
	case model.ScopeSingleInstance:
		return s.updateSingleInstance(ctx, existing, upd)
	case model.ScopeFutureInstances:
		return s.splitSeries(ctx, existing, upd)
	case model.ScopeWholeSeries, "":
		return s.updateWholeSeries(ctx, existing, upd)
	default:
		return nil, model.NewValidationError("update_type", fmt.Sprintf("unknown update scope %q", upd.Scope))
	}
}

// updateSingleInstance overrides one occurrence through a `modified`
// exception; the series row is never touched. On a one-shot series the
// edit is only meaningful for its sole occurrence.
func (s *Service) updateSingleInstance(ctx context.Context, existing *model.Series, upd *model.SeriesUpdate) (*model.Series, error) {
	if upd.ExceptionDate == nil {
		return nil, model.NewValidationError("exception_date", "exception date is required for single instance updates")
	}

	date := recurrence.DateOf(*upd.ExceptionDate)
	if !existing.IsRecurring && !date.Equal(recurrence.DateOf(existing.StartDate)) {
		return nil, model.NewValidationError("exception_date", "a non-recurring class has a single occurrence on its start date")
	}

	if upd.Patch.StartTime != nil {
		if _, _, err := recurrence.ParseTimeOfDay(*upd.Patch.StartTime); err != nil {
			return nil, model.NewValidationError("start_time", "start time must be HH:MM")
		}
	}
	if upd.Patch.DurationMinutes != nil && *upd.Patch.DurationMinutes <= 0 {
		return nil, model.NewValidationError("duration", "duration must be positive")
	}

	exc := &model.Exception{
		SeriesID:           existing.ID,
		Date:               date,
		Type:               model.ExceptionModified,
		NewStartTime:       upd.Patch.StartTime,
		NewDurationMinutes: upd.Patch.DurationMinutes,
		Reason:             upd.Reason,
	}

	if err := s.exceptionsRepository.UpsertException(ctx, s.db, exc); err != nil {
		return nil, fmt.Errorf("exceptionsRepository.UpsertException: %w", err)
	}

	return existing, nil
}

// splitSeries truncates the existing series strictly before the split
// date and spawns a new one effective from it, copying every field the
// patch does not override. Both writes happen in one transaction.
func (s *Service) splitSeries(ctx context.Context, existing *model.Series, upd *model.SeriesUpdate) (*model.Series, error) {
	if upd.SplitDate == nil {
		return nil, model.NewValidationError("split_date", "split date is required for future instance updates")
	}
	if !existing.IsRecurring {
		return nil, model.NewValidationError("split_date", "future instance updates require a recurring class")
	}

	splitDate := recurrence.DateOf(*upd.SplitDate)
	if !splitDate.After(recurrence.DateOf(existing.StartDate)) {
		return nil, model.NewValidationError("split_date", "split date must be after the series start date")
	}

	info := applyPatch(existing.SeriesCreate, &upd.Patch)
	info.StartDate = splitDate
	if upd.Patch.RecurringEndDate == nil {
		info.RecurringEndDate = existing.RecurringEndDate
	}

	if err := validateSeries(&info); err != nil {
		return nil, err
	}

	var newSeries *model.Series
	err := database.RunInTx(ctx, s.db, func(tx database.Tx) error {
		// The old series must produce nothing on or after the split.
		if err := s.seriesRepository.SetRecurringEndDate(ctx, tx, existing.ID, recurrence.AddDays(splitDate, -1)); err != nil {
			return fmt.Errorf("seriesRepository.SetRecurringEndDate: %w", err)
		}

		id, err := s.seriesRepository.CreateSeries(ctx, tx, &info)
		if err != nil {
			return fmt.Errorf("seriesRepository.CreateSeries: %w", err)
		}

		newSeries = &model.Series{
			ID:           id,
			SeriesCreate: info,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return newSeries, nil
}

func (s *Service) updateWholeSeries(ctx context.Context, existing *model.Series, upd *model.SeriesUpdate) (*model.Series, error) {
	info := applyPatch(existing.SeriesCreate, &upd.Patch)

	if err := validateSeries(&info); err != nil {
		return nil, err
	}

	updated := &model.Series{
		ID:           existing.ID,
		SeriesCreate: info,
	}

	if err := s.seriesRepository.UpdateSeries(ctx, s.db, updated); err != nil {
		return nil, fmt.Errorf("seriesRepository.UpdateSeries: %w", err)
	}

	return updated, nil
}
