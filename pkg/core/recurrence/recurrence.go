// Package recurrence projects the occurrence dates of a shift onto a date
// window. Occurrences are a read-time projection used by the calendar view;
// they are never persisted as shift records.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/careops/careshift/pkg/core/model"
)

// Expand returns every occurrence date of the shift inside the window,
// ascending. Both window bounds are inclusive at date granularity. Expand is
// a pure function of its inputs: the same shift and window always yield the
// same dates, and no occurrence precedes the shift's original start date.
func Expand(shift model.Shift, windowStart, windowEnd time.Time) ([]time.Time, error) {
	start := dateOf(windowStart)
	end := dateOf(windowEnd)
	if end.Before(start) {
		return nil, nil
	}

	anchor := dateOf(shift.StartTime)

	switch shift.Recurrence.Kind() {
	case model.RecurrenceNone:
		if anchor.Before(start) || anchor.After(end) {
			return nil, nil
		}
		return []time.Time{anchor}, nil

	case model.RecurrenceWeekly:
		return expandWeekly(anchor, start, end)

	case model.RecurrenceMonthly:
		return expandMonthly(anchor, shift.Recurrence.DayOfMonth(), start, end), nil

	default:
		return nil, fmt.Errorf("unknown recurrence kind %q", shift.Recurrence.Kind())
	}
}

// expandWeekly yields every date in the window on the anchor's weekday,
// starting no earlier than the anchor itself
func expandWeekly(anchor, start, end time.Time) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: anchor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly rule: %w", err)
	}

	occurrences := rule.Between(start, end, true)

	dates := make([]time.Time, 0, len(occurrences))
	for _, occ := range occurrences {
		dates = append(dates, dateOf(occ))
	}
	return dates, nil
}

// expandMonthly yields the anchored day-of-month in every month of the
// window, clamped to the last valid day of shorter months. RFC 5545 monthly
// rules skip months lacking the day (a BYMONTHDAY=31 rule never fires in
// February), so the clamped walk is done directly rather than through rrule.
func expandMonthly(anchor time.Time, dayOfMonth int, start, end time.Time) []time.Time {
	var dates []time.Time

	year, month := start.Year(), start.Month()
	for {
		day := dayOfMonth
		if last := lastDayOfMonth(year, month, start.Location()); day > last {
			day = last
		}
		occ := time.Date(year, month, day, 0, 0, 0, 0, start.Location())
		if occ.After(end) {
			break
		}
		if !occ.Before(start) && !occ.Before(anchor) {
			dates = append(dates, occ)
		}

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return dates
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	// Day zero of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// dateOf truncates a timestamp to its calendar date
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
