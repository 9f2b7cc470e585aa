package model

import "time"

// RecurrenceType matches the values persisted in the classes table.
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceCustom  RecurrenceType = "custom"
)

type SeriesCreate struct {
	OwnerID               int64
	Title                 string
	Subtitle              string
	Description           string
	Capacity              int
	DurationMinutes       int
	Level                 string
	MeetingLink           string
	StartDate             time.Time // date only, UTC midnight
	StartTime             string    // "HH:MM"
	IsRecurring           bool
	RecurrenceType        RecurrenceType
	RecurringDays         []int // weekday indices, 0 = Sunday; weekly only
	RecurringInterval     int
	RecurringEndDate      *time.Time // nil = unbounded
	ReminderEnabled       bool
	ReminderMinutesBefore int
	IsActive              bool
}

type Series struct {
	ID int64
	SeriesCreate
}

// SeriesPatch carries merge-patch semantics: nil fields keep the
// previous value. A recurring end date cannot be cleared through a
// patch, only moved.
type SeriesPatch struct {
	Title                 *string
	Subtitle              *string
	Description           *string
	Capacity              *int
	DurationMinutes       *int
	Level                 *string
	MeetingLink           *string
	StartDate             *time.Time
	StartTime             *string
	IsRecurring           *bool
	RecurrenceType        *RecurrenceType
	RecurringDays         []int
	RecurringInterval     *int
	RecurringEndDate      *time.Time
	ReminderEnabled       *bool
	ReminderMinutesBefore *int
	IsActive              *bool
}

// EditScope selects which part of a series a structural edit applies to.
type EditScope string

const (
	ScopeWholeSeries     EditScope = "whole_series"
	ScopeSingleInstance  EditScope = "single_instance"
	ScopeFutureInstances EditScope = "future_instances"
)

// SeriesUpdate is one lifecycle edit request.
type SeriesUpdate struct {
	Scope         EditScope
	ExceptionDate *time.Time // required for ScopeSingleInstance
	SplitDate     *time.Time // required for ScopeFutureInstances
	Reason        string
	Patch         SeriesPatch
}

// SeriesDelete is one lifecycle delete request.
type SeriesDelete struct {
	Scope         EditScope
	ExceptionDate *time.Time // required for ScopeSingleInstance
	Reason        string
}

type InstancesFilter struct {
	From    time.Time
	To      time.Time
	OwnerID int64 // 0 = all owners
}
