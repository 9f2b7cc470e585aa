package classes

import (
	"context"
	"fmt"

	"github.com/classbook/classbook-backend/internal/model"
)

func (s *Service) GetSeriesByID(ctx context.Context, id int64) (*SeriesWithExceptions, error) {
	series, err := s.seriesRepository.GetSeriesByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	exceptions, err := s.exceptionsRepository.GetExceptions(ctx, s.db, model.ExceptionsFilter{
		SeriesIDs: []int64{id},
	})
	if err != nil {
		return nil, fmt.Errorf("exceptionsRepository.GetExceptions: %w", err)
	}

	return &SeriesWithExceptions{
		Series:     series,
		Exceptions: exceptions,
	}, nil
}

func (s *Service) GetSeriesByOwner(ctx context.Context, ownerID int64) ([]*SeriesWithExceptions, error) {
	series, err := s.seriesRepository.GetSeriesByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, fmt.Errorf("seriesRepository.GetSeriesByOwner: %w", err)
	}

	if len(series) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(series))
	for i, ser := range series {
		ids[i] = ser.ID
	}

	exceptions, err := s.exceptionsRepository.GetExceptions(ctx, s.db, model.ExceptionsFilter{
		SeriesIDs: ids,
	})
	if err != nil {
		return nil, fmt.Errorf("exceptionsRepository.GetExceptions: %w", err)
	}

	bySeries := make(map[int64][]*model.Exception)
	for _, e := range exceptions {
		bySeries[e.SeriesID] = append(bySeries[e.SeriesID], e)
	}

	res := make([]*SeriesWithExceptions, len(series))
	for i, ser := range series {
		res[i] = &SeriesWithExceptions{
			Series:     ser,
			Exceptions: bySeries[ser.ID],
		}
	}

	return res, nil
}
