package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/classbook/classbook-backend/internal/business/classes"
	"github.com/classbook/classbook-backend/internal/model"
)

const dateFormat = "2006-01-02"

// date carries YYYY-MM-DD in JSON bodies and query strings.
type date time.Time

func (d date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(d).Format(dateFormat))), nil
}

func (d *date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string")
	}

	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return fmt.Errorf("date must be formatted as YYYY-MM-DD")
	}

	*d = date(t)
	return nil
}

func datePtr(t *time.Time) *date {
	if t == nil {
		return nil
	}
	d := date(*t)
	return &d
}

func timePtr(d *date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

type classResp struct {
	ID                    int64                `json:"id"`
	OwnerID               int64                `json:"user_id"`
	Title                 string               `json:"title"`
	Subtitle              string               `json:"subtitle,omitempty"`
	Description           string               `json:"description,omitempty"`
	Capacity              int                  `json:"max_participants"`
	DurationMinutes       int                  `json:"duration"`
	Level                 string               `json:"level,omitempty"`
	MeetingLink           string               `json:"meeting_link,omitempty"`
	StartDate             date                 `json:"start_date"`
	StartTime             string               `json:"start_time"`
	IsRecurring           bool                 `json:"is_recurring"`
	RecurrenceType        model.RecurrenceType `json:"recurrence_type,omitempty"`
	RecurringDays         []int                `json:"recurring_days,omitempty"`
	RecurringInterval     int                  `json:"recurring_interval,omitempty"`
	RecurringEndDate      *date                `json:"recurring_end_date,omitempty"`
	ReminderEnabled       bool                 `json:"reminder_enabled"`
	ReminderMinutesBefore int                  `json:"reminder_minutes_before"`
	IsActive              bool                 `json:"is_active"`
}

func mapToClassResp(s *model.Series) (*classResp, error) {
	return &classResp{
		ID:                    s.ID,
		OwnerID:               s.OwnerID,
		Title:                 s.Title,
		Subtitle:              s.Subtitle,
		Description:           s.Description,
		Capacity:              s.Capacity,
		DurationMinutes:       s.DurationMinutes,
		Level:                 s.Level,
		MeetingLink:           s.MeetingLink,
		StartDate:             date(s.StartDate),
		StartTime:             s.StartTime,
		IsRecurring:           s.IsRecurring,
		RecurrenceType:        s.RecurrenceType,
		RecurringDays:         s.RecurringDays,
		RecurringInterval:     s.RecurringInterval,
		RecurringEndDate:      datePtr(s.RecurringEndDate),
		ReminderEnabled:       s.ReminderEnabled,
		ReminderMinutesBefore: s.ReminderMinutesBefore,
		IsActive:              s.IsActive,
	}, nil
}

type exceptionResp struct {
	SeriesID           int64               `json:"class_id"`
	Date               date                `json:"exception_date"`
	Type               model.ExceptionType `json:"exception_type"`
	NewStartTime       *string             `json:"new_start_time,omitempty"`
	NewDurationMinutes *int                `json:"new_duration,omitempty"`
	Reason             string              `json:"reason,omitempty"`
}

func mapToExceptionResp(e *model.Exception) (*exceptionResp, error) {
	return &exceptionResp{
		SeriesID:           e.SeriesID,
		Date:               date(e.Date),
		Type:               e.Type,
		NewStartTime:       e.NewStartTime,
		NewDurationMinutes: e.NewDurationMinutes,
		Reason:             e.Reason,
	}, nil
}

type classWithExceptionsResp struct {
	Class      *classResp       `json:"class"`
	Exceptions []*exceptionResp `json:"exceptions"`
}

func mapToClassWithExceptionsResp(s *classes.SeriesWithExceptions) (*classWithExceptionsResp, error) {
	class, err := mapToClassResp(s.Series)
	if err != nil {
		return nil, err
	}

	exceptions, err := mapSlice(s.Exceptions, mapToExceptionResp)
	if err != nil {
		return nil, err
	}
	if exceptions == nil {
		exceptions = []*exceptionResp{}
	}

	return &classWithExceptionsResp{
		Class:      class,
		Exceptions: exceptions,
	}, nil
}

type occurrenceResp struct {
	ID              string `json:"id"`
	SeriesID        int64  `json:"class_id"`
	OwnerID         int64  `json:"user_id"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	Description     string `json:"description,omitempty"`
	Capacity        int    `json:"max_participants"`
	DurationMinutes int    `json:"duration"`
	Level           string `json:"level,omitempty"`
	MeetingLink     string `json:"meeting_link,omitempty"`
	Date            date   `json:"date"`
	DayOfWeek       int    `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	IsRecurring     bool   `json:"is_recurring"`
	IsException     bool   `json:"is_exception"`
	ExceptionReason string `json:"exception_reason,omitempty"`
}

func mapToOccurrenceResp(o *model.Occurrence) (*occurrenceResp, error) {
	return &occurrenceResp{
		ID:              o.ID,
		SeriesID:        o.SeriesID,
		OwnerID:         o.OwnerID,
		Title:           o.Title,
		Subtitle:        o.Subtitle,
		Description:     o.Description,
		Capacity:        o.Capacity,
		DurationMinutes: o.DurationMinutes,
		Level:           o.Level,
		MeetingLink:     o.MeetingLink,
		Date:            date(o.Date),
		DayOfWeek:       o.DayOfWeek,
		StartTime:       o.StartTime,
		EndTime:         o.EndTime,
		IsRecurring:     o.IsRecurring,
		IsException:     o.IsException,
		ExceptionReason: o.ExceptionReason,
	}, nil
}
