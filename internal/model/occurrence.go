package model

import "time"

// Occurrence is a derived bookable event on a concrete date. It is
// recomputed on every query and never persisted.
type Occurrence struct {
	ID              string // "<seriesID>_<YYYY-MM-DD>"
	SeriesID        int64
	OwnerID         int64
	Title           string
	Subtitle        string
	Description     string
	Capacity        int
	DurationMinutes int
	Level           string
	MeetingLink     string
	Date            time.Time
	DayOfWeek       int // 0 = Sunday
	StartTime       string
	EndTime         string // derived from StartTime + DurationMinutes
	IsRecurring     bool
	IsException     bool
	ExceptionReason string
	Series          *Series // originating series snapshot
}
