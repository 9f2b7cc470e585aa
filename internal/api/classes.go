package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/classbook/classbook-backend/internal/model"
)

func (a *Api) createClassHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		OwnerID               int64                `json:"user_id"`
		Title                 string               `json:"title"`
		Subtitle              string               `json:"subtitle"`
		Description           string               `json:"description"`
		Capacity              int                  `json:"max_participants"`
		DurationMinutes       int                  `json:"duration"`
		Level                 string               `json:"level"`
		MeetingLink           string               `json:"meeting_link"`
		StartDate             date                 `json:"start_date"`
		StartTime             string               `json:"start_time"`
		IsRecurring           bool                 `json:"is_recurring"`
		RecurrenceType        model.RecurrenceType `json:"recurrence_type"`
		RecurringDays         []int                `json:"recurring_days"`
		RecurringInterval     int                  `json:"recurring_interval"`
		RecurringEndDate      *date                `json:"recurring_end_date"`
		ReminderEnabled       *bool                `json:"reminder_enabled"`
		ReminderMinutesBefore *int                 `json:"reminder_minutes_before"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	// Reminders are on, thirty minutes ahead, unless the request says
	// otherwise. An explicit zero lead means remind at start time.
	reminderEnabled := true
	if req.ReminderEnabled != nil {
		reminderEnabled = *req.ReminderEnabled
	}
	reminderMinutes := 30
	if req.ReminderMinutesBefore != nil {
		reminderMinutes = *req.ReminderMinutesBefore
	}

	created, err := a.classes.CreateSeries(r.Context(), &model.SeriesCreate{
		OwnerID:               req.OwnerID,
		Title:                 req.Title,
		Subtitle:              req.Subtitle,
		Description:           req.Description,
		Capacity:              req.Capacity,
		DurationMinutes:       req.DurationMinutes,
		Level:                 req.Level,
		MeetingLink:           req.MeetingLink,
		StartDate:             time.Time(req.StartDate),
		StartTime:             req.StartTime,
		IsRecurring:           req.IsRecurring,
		RecurrenceType:        req.RecurrenceType,
		RecurringDays:         req.RecurringDays,
		RecurringInterval:     req.RecurringInterval,
		RecurringEndDate:      timePtr(req.RecurringEndDate),
		ReminderEnabled:       reminderEnabled,
		ReminderMinutesBefore: reminderMinutes,
	})
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create class: %w", err))
		return
	}

	resp, _ := mapToClassResp(created)
	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getClassHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	class, err := a.classes.GetSeriesByID(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get class: %w", err))
		return
	}

	resp, err := mapToClassWithExceptionsResp(class)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getOwnerClassesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	list, err := a.classes.GetSeriesByOwner(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get owner classes: %w", err))
		return
	}

	resp, err := mapSlice(list, mapToClassWithExceptionsResp)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}
	if resp == nil {
		resp = []*classWithExceptionsResp{}
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getInstancesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseInstancesQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	instances, err := a.classes.GetInstances(r.Context(), *filter)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get instances: %w", err))
		return
	}

	resp, _ := mapSlice(instances, mapToOccurrenceResp)
	if resp == nil {
		resp = []*occurrenceResp{}
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func parseInstancesQuery(r *http.Request) (*model.InstancesFilter, error) {
	var err error

	res := &model.InstancesFilter{}

	v := r.URL.Query().Get("from")
	if v == "" {
		return nil, fmt.Errorf("from must be provided")
	}
	res.From, err = time.Parse(dateFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	v = r.URL.Query().Get("to")
	if v == "" {
		return nil, fmt.Errorf("to must be provided")
	}
	res.To, err = time.Parse(dateFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	if v := r.URL.Query().Get("owner_id"); v != "" {
		res.OwnerID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid owner id %v", v)
		}
	}

	return res, nil
}

func (a *Api) updateClassHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &struct {
		UpdateType    model.EditScope `json:"update_type"`
		ExceptionDate *date           `json:"exception_date"`
		SplitDate     *date           `json:"split_date"`
		Reason        string          `json:"reason"`

		Title                 *string               `json:"title"`
		Subtitle              *string               `json:"subtitle"`
		Description           *string               `json:"description"`
		Capacity              *int                  `json:"max_participants"`
		DurationMinutes       *int                  `json:"duration"`
		Level                 *string               `json:"level"`
		MeetingLink           *string               `json:"meeting_link"`
		StartDate             *date                 `json:"start_date"`
		StartTime             *string               `json:"start_time"`
		IsRecurring           *bool                 `json:"is_recurring"`
		RecurrenceType        *model.RecurrenceType `json:"recurrence_type"`
		RecurringDays         []int                 `json:"recurring_days"`
		RecurringInterval     *int                  `json:"recurring_interval"`
		RecurringEndDate      *date                 `json:"recurring_end_date"`
		ReminderEnabled       *bool                 `json:"reminder_enabled"`
		ReminderMinutesBefore *int                  `json:"reminder_minutes_before"`
		IsActive              *bool                 `json:"is_active"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	updated, err := a.classes.UpdateSeries(r.Context(), id, &model.SeriesUpdate{
		Scope:         req.UpdateType,
		ExceptionDate: timePtr(req.ExceptionDate),
		SplitDate:     timePtr(req.SplitDate),
		Reason:        req.Reason,
		Patch: model.SeriesPatch{
			Title:                 req.Title,
			Subtitle:              req.Subtitle,
			Description:           req.Description,
			Capacity:              req.Capacity,
			DurationMinutes:       req.DurationMinutes,
			Level:                 req.Level,
			MeetingLink:           req.MeetingLink,
			StartDate:             timePtr(req.StartDate),
			StartTime:             req.StartTime,
			IsRecurring:           req.IsRecurring,
			RecurrenceType:        req.RecurrenceType,
			RecurringDays:         req.RecurringDays,
			RecurringInterval:     req.RecurringInterval,
			RecurringEndDate:      timePtr(req.RecurringEndDate),
			ReminderEnabled:       req.ReminderEnabled,
			ReminderMinutesBefore: req.ReminderMinutesBefore,
			IsActive:              req.IsActive,
		},
	})
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update class: %w", err))
		return
	}

	resp, _ := mapToClassResp(updated)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteClassHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	// An empty body means deleting the whole series.
	del := &model.SeriesDelete{}
	if r.ContentLength != 0 {
		req := &struct {
			DeleteType    model.EditScope `json:"delete_type"`
			ExceptionDate *date           `json:"exception_date"`
			Reason        string          `json:"reason"`
		}{}

		if err := a.readJSON(w, r, req); err != nil {
			a.badRequestResponse(w, r, err)
			return
		}

		del = &model.SeriesDelete{
			Scope:         req.DeleteType,
			ExceptionDate: timePtr(req.ExceptionDate),
			Reason:        req.Reason,
		}
	}

	if err := a.classes.DeleteSeries(r.Context(), id, del); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete class: %w", err))
		return
	}

	if del.Scope == model.ScopeSingleInstance && del.ExceptionDate != nil {
		a.notifyCancellation(r, id, *del.ExceptionDate, del.Reason)
	}

	w.WriteHeader(http.StatusNoContent)
}

// notifyCancellation pushes a cancellation to booked participants, best
// effort: the cancellation itself is already persisted.
func (a *Api) notifyCancellation(r *http.Request, id int64, date time.Time, reason string) {
	class, err := a.classes.GetSeriesByID(r.Context(), id)
	if err != nil {
		a.logger.Errorw("failed to load class for cancellation push", "class_id", id, "err", err)
		return
	}

	if reason == "" {
		reason = "Cancelled by instructor"
	}

	if err := a.notifier.SendClassCancellation(r.Context(), class.Series, date, reason); err != nil {
		a.logger.Errorw("failed to push cancellation", "class_id", id, "err", err)
	}
}

func (a *Api) upsertExceptionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &struct {
		Date               date                `json:"exception_date"`
		Type               model.ExceptionType `json:"exception_type"`
		NewStartTime       *string             `json:"new_start_time"`
		NewDurationMinutes *int                `json:"new_duration"`
		Reason             string              `json:"reason"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	exc := &model.Exception{
		SeriesID:           id,
		Date:               time.Time(req.Date),
		Type:               req.Type,
		NewStartTime:       req.NewStartTime,
		NewDurationMinutes: req.NewDurationMinutes,
		Reason:             req.Reason,
	}

	if err := a.classes.UpsertException(r.Context(), exc); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("upsert exception: %w", err))
		return
	}

	if exc.Type == model.ExceptionCancelled {
		a.notifyCancellation(r, id, exc.Date, exc.Reason)
	}

	resp, _ := mapToExceptionResp(exc)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteExceptionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	excDate, err := time.Parse(dateFormat, chi.URLParam(r, "date"))
	if err != nil {
		a.badRequestResponse(w, r, fmt.Errorf("invalid date format: %w", err))
		return
	}

	if err := a.classes.DeleteException(r.Context(), id, excDate); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete exception: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
