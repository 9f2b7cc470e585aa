package classes

import (
	"context"
	"fmt"

	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
)

func (s *Service) CreateSeries(ctx context.Context, info *model.SeriesCreate) (*model.Series, error) {
	applyCreateDefaults(info)

	if err := validateSeries(info); err != nil {
		return nil, err
	}

	id, err := s.seriesRepository.CreateSeries(ctx, s.db, info)
	if err != nil {
		return nil, fmt.Errorf("seriesRepository.CreateSeries: %w", err)
	}

	return &model.Series{
		ID:           id,
		SeriesCreate: *info,
	}, nil
}

func applyCreateDefaults(info *model.SeriesCreate) {
	if info.Capacity == 0 {
		info.Capacity = 20
	}
	if info.DurationMinutes == 0 {
		info.DurationMinutes = 60
	}
	if info.Level == "" {
		info.Level = "Beginner"
	}

	info.StartDate = recurrence.DateOf(info.StartDate)
	info.RecurringDays = normalizeDays(info.RecurringDays)
	info.IsActive = true

	if !info.IsRecurring {
		info.RecurrenceType = model.RecurrenceNone
		info.RecurringDays = nil
		info.RecurringEndDate = nil
	}

	// Custom keeps the caller's interval; see validateSeries.
	if info.IsRecurring && info.RecurrenceType != model.RecurrenceCustom && info.RecurringInterval == 0 {
		info.RecurringInterval = 1
	}

	if info.RecurringEndDate != nil {
		end := recurrence.DateOf(*info.RecurringEndDate)
		info.RecurringEndDate = &end
	}
}
