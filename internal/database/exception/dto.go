package exception

import (
	"time"

	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
)

type exceptionDTO struct {
	ClassID       int64
	ExceptionDate time.Time
	ExceptionType string
	NewStartTime  *string
	NewDuration   *int
	Reason        string
}

func mapToException(dto *exceptionDTO) *model.Exception {
	return &model.Exception{
		SeriesID:           dto.ClassID,
		Date:               recurrence.DateOf(dto.ExceptionDate),
		Type:               model.ExceptionType(dto.ExceptionType),
		NewStartTime:       dto.NewStartTime,
		NewDurationMinutes: dto.NewDuration,
		Reason:             dto.Reason,
	}
}
