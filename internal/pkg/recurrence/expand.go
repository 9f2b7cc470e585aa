package recurrence

import (
	"sort"
	"time"

	"github.com/classbook/classbook-backend/internal/model"
)

// Expand produces the sorted raw occurrence dates of a series inside
// [rangeStart, rangeEnd], ignoring exceptions. It is a pure function of
// its inputs; calling it twice yields the same result.
//
// The cursor starts at the series anchor and is fast-forwarded to the
// window with the recurrence-specific step, so a window that starts in
// the middle of a week or month still lands on rule-aligned dates.
// Termination always comes from the series' own boundary (end date or
// window end), never from a cap.
func Expand(s *model.Series, rangeStart, rangeEnd time.Time) []time.Time {
	rangeStart = DateOf(rangeStart)
	rangeEnd = DateOf(rangeEnd)

	start := DateOf(s.StartDate)
	if start.After(rangeEnd) {
		return nil
	}

	if !s.IsRecurring {
		if !start.Before(rangeStart) {
			return []time.Time{start}
		}
		return nil
	}

	lower := rangeStart
	if start.After(lower) {
		lower = start
	}

	upper := rangeEnd
	if s.RecurringEndDate != nil {
		if end := DateOf(*s.RecurringEndDate); end.Before(upper) {
			upper = end
		}
	}

	// A recurring row with no recognized rule emits its anchor once at
	// most; creation rejects the combination, this guards legacy rows.
	switch s.RecurrenceType {
	case model.RecurrenceDaily, model.RecurrenceWeekly, model.RecurrenceMonthly, model.RecurrenceCustom:
	default:
		if !start.Before(lower) && !start.After(upper) {
			return []time.Time{start}
		}
		return nil
	}

	interval := s.RecurringInterval
	if interval < 1 {
		interval = 1
	}

	days := sortedDays(s.RecurringDays)

	cursor := start
	for cursor.Before(lower) {
		cursor = nextDate(s.RecurrenceType, cursor, days, interval)
	}

	var res []time.Time
	for !cursor.After(upper) {
		res = append(res, cursor)
		cursor = nextDate(s.RecurrenceType, cursor, days, interval)
	}

	return res
}

// nextDate advances the cursor by one occurrence according to the
// recurrence type. Every branch strictly increases the date.
func nextDate(t model.RecurrenceType, cur time.Time, days []int, interval int) time.Time {
	switch t {
	case model.RecurrenceWeekly:
		if len(days) == 0 {
			// Legacy fallback for rows persisted without a day set.
			return AddDays(cur, 7*interval)
		}

		wd := DayOfWeek(cur)
		for _, d := range days {
			if d > wd {
				return AddDays(cur, d-wd)
			}
		}

		// Wrap to the smallest day of the next interval-th week block.
		return AddDays(cur, 7*interval-wd+days[0])

	case model.RecurrenceMonthly:
		return AddMonthsClamped(cur, interval)

	default:
		// Daily; custom is an explicit every-N-days rule.
		return AddDays(cur, interval)
	}
}

func sortedDays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	res := make([]int, 0, len(days))
	seen := make(map[int]struct{}, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		res = append(res, d)
	}

	sort.Ints(res)
	return res
}
