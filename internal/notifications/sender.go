package notifications

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/xlab/closer"
	"go.uber.org/zap"

	"github.com/classbook/classbook-backend/internal/database"
	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/recurrence"
)

// Sender drives the reminder loop: every tick it finds the series that
// occur today, computes which reminders fall due inside the tick
// window and pushes them once per (series, date, recipient). It also
// fans out cancellation notifications on demand.
type Sender struct {
	db         database.PGX
	logger     *zap.SugaredLogger
	series     seriesRepository
	exceptions exceptionsRepository
	users      usersRepository
	marks      markRepository
	notifier   Notifier

	tickPeriod time.Duration
	tickBudget time.Duration
	location   *time.Location

	mu sync.Mutex
}

type seriesRepository interface {
	GetReminderSeries(ctx context.Context, q database.Queryable, today time.Time) ([]*model.Series, error)
}

type exceptionsRepository interface {
	GetExceptions(ctx context.Context, q database.Queryable, filter model.ExceptionsFilter) ([]*model.Exception, error)
}

type usersRepository interface {
	GetUserByID(ctx context.Context, q database.Queryable, id int64) (*model.User, error)
	GetClassParticipants(ctx context.Context, q database.Queryable, seriesID int64, date time.Time) ([]*model.User, error)
}

type markRepository interface {
	Mark(ctx context.Context, key string) (bool, error)
}

func NewSender(
	db database.PGX,
	logger *zap.SugaredLogger,
	series seriesRepository,
	exceptions exceptionsRepository,
	users usersRepository,
	marks markRepository,
	notifier Notifier,
	tickPeriod time.Duration,
	tickBudget time.Duration,
	location *time.Location,
) *Sender {
	return &Sender{
		db:         db,
		logger:     logger,
		series:     series,
		exceptions: exceptions,
		users:      users,
		marks:      marks,
		notifier:   notifier,
		tickPeriod: tickPeriod,
		tickBudget: tickBudget,
		location:   location,
	}
}

func (s *Sender) Start(ctx context.Context) {
	ticker := time.NewTicker(s.tickPeriod)
	done := make(chan struct{})

	closer.Bind(func() {
		close(done)
		ticker.Stop()
	})

	s.tick(ctx, time.Now())

	for {
		select {
		case <-done:
			return
		case t := <-ticker.C:
			s.tick(ctx, t)
		}
	}
}

// tick launches one reminder pass. A pass that has not finished by the
// time the next tick arrives makes the new tick a no-op instead of
// piling up concurrent runs.
func (s *Sender) tick(ctx context.Context, now time.Time) {
	if !s.mu.TryLock() {
		s.logger.Infow("previous reminder run still in progress, skipping tick", "now", now)
		return
	}

	go func() {
		defer s.mu.Unlock()

		ctx, cancel := context.WithTimeout(ctx, s.tickBudget)
		defer cancel()

		if err := s.runTick(ctx, now); err != nil {
			s.logger.Errorw("reminder run failed", "err", err)
		}
	}()
}

func (s *Sender) runTick(ctx context.Context, now time.Time) error {
	now = now.In(s.location)
	today := recurrence.DateOf(now)

	s.logger.Debugw("running reminder pass", "date", recurrence.FormatDate(today))

	series, err := s.series.GetReminderSeries(ctx, s.db, today)
	if err != nil {
		return fmt.Errorf("seriesRepository.GetReminderSeries: %w", err)
	}
	if len(series) == 0 {
		return nil
	}

	ids := make([]int64, len(series))
	for i, ser := range series {
		ids[i] = ser.ID
	}

	exceptions, err := s.exceptions.GetExceptions(ctx, s.db, model.ExceptionsFilter{
		SeriesIDs: ids,
		From:      today,
		To:        today,
	})
	if err != nil {
		return fmt.Errorf("exceptionsRepository.GetExceptions: %w", err)
	}

	byID := make(map[int64]*model.Exception, len(exceptions))
	for _, e := range exceptions {
		byID[e.SeriesID] = e
	}

	for _, ser := range series {
		if ctx.Err() != nil {
			// Budget exhausted; the rest waits for the next tick.
			s.logger.Infow("reminder run out of budget", "class_id", ser.ID)
			return nil
		}

		if err := s.remindSeries(ctx, now, today, ser, byID[ser.ID]); err != nil {
			s.logger.Errorw("failed to process class reminders", "class_id", ser.ID, "err", err)
		}
	}

	return nil
}

func (s *Sender) remindSeries(ctx context.Context, now, today time.Time, ser *model.Series, exc *model.Exception) error {
	if !recurrence.OccursOn(ser, today) {
		return nil
	}

	startTime := ser.StartTime
	if exc != nil {
		if exc.Type == model.ExceptionCancelled {
			return nil
		}
		if exc.NewStartTime != nil {
			startTime = *exc.NewStartTime
		}
	}

	startAt, err := recurrence.At(today, startTime, s.location)
	if err != nil {
		return fmt.Errorf("resolve occurrence time: %w", err)
	}

	remindAt := startAt.Add(-time.Duration(ser.ReminderMinutesBefore) * time.Minute)
	delta := remindAt.Sub(now).Round(time.Minute)
	if delta < 0 || delta > s.tickPeriod {
		return nil
	}

	recipients, err := s.recipients(ctx, ser, today)
	if err != nil {
		return err
	}

	for _, u := range recipients {
		key := fmt.Sprintf("%v:%v:%v", ser.ID, recurrence.FormatDate(today), u.ID)
		first, err := s.marks.Mark(ctx, key)
		if err != nil {
			return fmt.Errorf("marks.Mark: %w", err)
		}
		if !first {
			continue
		}

		if err := s.notifier.Notify(ctx, u, reminderNotification(ser, today, startTime, u.ID == ser.OwnerID)); err != nil {
			s.logger.Errorw("failed to send reminder", "class_id", ser.ID, "user_id", u.ID, "err", err)
		}
	}

	return nil
}

// recipients is everyone booked on the occurrence plus the instructor.
func (s *Sender) recipients(ctx context.Context, ser *model.Series, date time.Time) ([]*model.User, error) {
	participants, err := s.users.GetClassParticipants(ctx, s.db, ser.ID, date)
	if err != nil {
		return nil, fmt.Errorf("usersRepository.GetClassParticipants: %w", err)
	}

	for _, u := range participants {
		if u.ID == ser.OwnerID {
			return participants, nil
		}
	}

	owner, err := s.users.GetUserByID(ctx, s.db, ser.OwnerID)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			return participants, nil
		}
		return nil, fmt.Errorf("usersRepository.GetUserByID: %w", err)
	}

	return append(participants, owner), nil
}

func reminderNotification(ser *model.Series, date time.Time, startTime string, instructor bool) *Notification {
	message := fmt.Sprintf("%s starts at %s", ser.Title, startTime)
	if instructor {
		message = fmt.Sprintf("You are teaching %s at %s", ser.Title, startTime)
	}

	return &Notification{
		Type:    TypeClassReminder,
		Title:   "Upcoming class",
		Message: message,
		Data: map[string]string{
			"class_id":   strconv.FormatInt(ser.ID, 10),
			"date":       recurrence.FormatDate(date),
			"start_time": startTime,
		},
	}
}

// SendClassCancellation notifies everyone booked on the occurrence
// that it will not take place, in one batch. The cancellation itself
// has already been persisted by the caller.
func (s *Sender) SendClassCancellation(ctx context.Context, ser *model.Series, date time.Time, reason string) error {
	date = recurrence.DateOf(date)

	participants, err := s.users.GetClassParticipants(ctx, s.db, ser.ID, date)
	if err != nil {
		return fmt.Errorf("usersRepository.GetClassParticipants: %w", err)
	}

	n := &Notification{
		Type:    TypeClassCancellation,
		Title:   "Class cancelled",
		Message: fmt.Sprintf("%s on %s has been cancelled: %s", ser.Title, recurrence.FormatDate(date), reason),
		Data: map[string]string{
			"class_id": strconv.FormatInt(ser.ID, 10),
			"date":     recurrence.FormatDate(date),
		},
	}

	if err := s.notifier.NotifyAll(ctx, participants, n); err != nil {
		return fmt.Errorf("notifier.NotifyAll: %w", err)
	}

	return nil
}
