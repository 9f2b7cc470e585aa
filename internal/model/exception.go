package model

import "time"

type ExceptionType string

const (
	ExceptionCancelled   ExceptionType = "cancelled"
	ExceptionRescheduled ExceptionType = "rescheduled"
	ExceptionModified    ExceptionType = "modified"
)

// Exception is a single-date override of a series. At most one exists
// per (series, date); it never outlives its series.
type Exception struct {
	SeriesID           int64
	Date               time.Time // date only, UTC midnight
	Type               ExceptionType
	NewStartTime       *string // "HH:MM"; rescheduled/modified
	NewDurationMinutes *int    // modified
	Reason             string
}

type ExceptionsFilter struct {
	SeriesIDs []int64
	From      time.Time
	To        time.Time
}
