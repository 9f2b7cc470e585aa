package classes

import (
	"context"
	"fmt"

	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
)

// DeleteSeries cancels one occurrence (single instance scope) or
// removes the whole series. Cancelling writes a `cancelled` exception;
// the series row stays as is.
func (s *Service) DeleteSeries(ctx context.Context, id int64, del *model.SeriesDelete) error {
	existing, err := s.seriesRepository.GetSeriesByID(ctx, s.db, id)
	if err != nil {
		return err
	}

	switch del.Scope {
	case model.ScopeSingleInstance:
		if del.ExceptionDate == nil {
			return model.NewValidationError("exception_date", "exception date is required for single instance deletion")
		}

		date := recurrence.DateOf(*del.ExceptionDate)
		if !existing.IsRecurring && !date.Equal(recurrence.DateOf(existing.StartDate)) {
			return model.NewValidationError("exception_date", "a non-recurring class has a single occurrence on its start date")
		}

		reason := del.Reason
		if reason == "" {
			reason = defaultCancelReason
		}

		exc := &model.Exception{
			SeriesID: existing.ID,
			Date:     date,
			Type:     model.ExceptionCancelled,
			Reason:   reason,
		}

		if err := s.exceptionsRepository.UpsertException(ctx, s.db, exc); err != nil {
			return fmt.Errorf("exceptionsRepository.UpsertException: %w", err)
		}

		return nil

	case model.ScopeWholeSeries, "":
		if err := s.seriesRepository.DeleteSeries(ctx, s.db, existing.ID); err != nil {
			return fmt.Errorf("seriesRepository.DeleteSeries: %w", err)
		}

		return nil

	default:
		return model.NewValidationError("delete_type", fmt.Sprintf("unknown delete scope %q", del.Scope))
	}
}
