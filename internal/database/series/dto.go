package series

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
)

type seriesDTO struct {
	ID                    int64
	UserID                int64
	Title                 string
	Subtitle              string
	Description           string
	MaxParticipants       int
	Duration              int
	Level                 string
	MeetingLink           string
	StartDate             time.Time
	StartTime             string
	IsRecurring           bool
	RecurrenceType        string
	RecurringDays         *string
	RecurringInterval     int
	RecurringEndDate      *time.Time
	ReminderEnabled       bool
	ReminderMinutesBefore int
	IsActive              bool
}

func mapToSeries(dto *seriesDTO) (*model.Series, error) {
	days, until, err := parseRecurringDays(dto.RecurringDays)
	if err != nil {
		return nil, fmt.Errorf("series %v: %w", dto.ID, err)
	}

	endDate := dto.RecurringEndDate
	if endDate == nil {
		endDate = until
	}

	return &model.Series{
		ID: dto.ID,
		SeriesCreate: model.SeriesCreate{
			OwnerID:               dto.UserID,
			Title:                 dto.Title,
			Subtitle:              dto.Subtitle,
			Description:           dto.Description,
			Capacity:              dto.MaxParticipants,
			DurationMinutes:       dto.Duration,
			Level:                 dto.Level,
			MeetingLink:           dto.MeetingLink,
			StartDate:             recurrence.DateOf(dto.StartDate),
			StartTime:             dto.StartTime,
			IsRecurring:           dto.IsRecurring,
			RecurrenceType:        model.RecurrenceType(dto.RecurrenceType),
			RecurringDays:         days,
			RecurringInterval:     dto.RecurringInterval,
			RecurringEndDate:      endDate,
			ReminderEnabled:       dto.ReminderEnabled,
			ReminderMinutesBefore: dto.ReminderMinutesBefore,
			IsActive:              dto.IsActive,
		},
	}, nil
}

// parseRecurringDays normalizes the persisted recurring_days column into
// the canonical sorted weekday slice. Historic rows carry three formats:
// a JSON array ("[1,3,5]", possibly with string elements), a bare comma
// string ("1,3,5"), or a JSON object with "days" and an optional "until"
// date. Nothing past this function ever sees the raw formats.
func parseRecurringDays(raw *string) ([]int, *time.Time, error) {
	if raw == nil {
		return nil, nil, nil
	}

	s := strings.TrimSpace(*raw)
	if s == "" || s == "null" || s == "[]" {
		return nil, nil, nil
	}

	switch s[0] {
	case '[':
		var arr []interface{}
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return nil, nil, fmt.Errorf("parse recurring days %q: %w", s, err)
		}

		days, err := coerceDays(arr)
		return days, nil, err

	case '{':
		var obj struct {
			Days  []interface{} `json:"days"`
			Until string        `json:"until"`
		}
		if err := json.Unmarshal([]byte(s), &obj); err != nil {
			return nil, nil, fmt.Errorf("parse recurring days %q: %w", s, err)
		}

		days, err := coerceDays(obj.Days)
		if err != nil {
			return nil, nil, err
		}

		var until *time.Time
		if obj.Until != "" {
			d, err := recurrence.ParseDate(obj.Until)
			if err != nil {
				return nil, nil, err
			}
			until = &d
		}

		return days, until, nil

	default:
		parts := strings.Split(s, ",")
		arr := make([]interface{}, len(parts))
		for i, p := range parts {
			arr[i] = strings.TrimSpace(p)
		}

		days, err := coerceDays(arr)
		return days, nil, err
	}
}

func coerceDays(arr []interface{}) ([]int, error) {
	seen := make(map[int]struct{}, len(arr))
	res := make([]int, 0, len(arr))

	for _, v := range arr {
		var day int
		switch d := v.(type) {
		case float64:
			day = int(d)
		case string:
			parsed, err := strconv.Atoi(d)
			if err != nil {
				return nil, fmt.Errorf("recurring day %q is not a weekday index", d)
			}
			day = parsed
		default:
			return nil, fmt.Errorf("recurring day %v has unsupported type %T", v, v)
		}

		if day < 0 || day > 6 {
			return nil, fmt.Errorf("recurring day %v out of range", day)
		}
		if _, ok := seen[day]; ok {
			continue
		}

		seen[day] = struct{}{}
		res = append(res, day)
	}

	sort.Ints(res)
	return res, nil
}

// marshalRecurringDays writes the canonical format, a JSON array.
func marshalRecurringDays(days []int) string {
	if len(days) == 0 {
		return "[]"
	}

	b, _ := json.Marshal(days)
	return string(b)
}
