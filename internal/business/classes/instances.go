package classes

import (
	"context"
	"fmt"
	"sort"

	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
)

// GetInstances expands every candidate series over the window and
// overlays the stored exceptions, returning the concrete bookable
// occurrences. Read-only: calling it twice with no intervening writes
// yields identical output.
func (s *Service) GetInstances(ctx context.Context, filter model.InstancesFilter) ([]*model.Occurrence, error) {
	if filter.From.IsZero() || filter.To.IsZero() {
		return nil, model.NewValidationError("range", "both range bounds must be provided")
	}

	from := recurrence.DateOf(filter.From)
	to := recurrence.DateOf(filter.To)
	if from.After(to) {
		return nil, model.NewValidationError("range", "range start must not be after range end")
	}

	filter.From = from
	filter.To = to

	candidates, err := s.seriesRepository.GetCandidateSeries(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("seriesRepository.GetCandidateSeries: %w", err)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(candidates))
	for i, ser := range candidates {
		ids[i] = ser.ID
	}

	exceptions, err := s.exceptionsRepository.GetExceptions(ctx, s.db, model.ExceptionsFilter{
		SeriesIDs: ids,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, fmt.Errorf("exceptionsRepository.GetExceptions: %w", err)
	}

	bySeries := make(map[int64][]*model.Exception)
	for _, e := range exceptions {
		bySeries[e.SeriesID] = append(bySeries[e.SeriesID], e)
	}

	var res []*model.Occurrence
	for _, ser := range candidates {
		raw := recurrence.Expand(ser, from, to)
		res = append(res, recurrence.Apply(raw, ser, recurrence.ExceptionsByDate(bySeries[ser.ID]))...)
	}

	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].StartTime < res[j].StartTime
	})

	return res, nil
}
