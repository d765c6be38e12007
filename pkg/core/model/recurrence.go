package model

import "fmt"

// RecurrenceKind discriminates the recurrence variant of a shift
type RecurrenceKind string

const (
	RecurrenceNone    RecurrenceKind = "none"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
)

// Recurrence is the repetition rule of a shift. A zero Recurrence means the
// shift is a one-off; the day-of-month is only meaningful for the monthly
// variant, so an invalid rule-without-recurring combination cannot be built.
type Recurrence struct {
	kind       RecurrenceKind
	dayOfMonth int
}

// NoRecurrence returns the one-off variant
func NoRecurrence() Recurrence {
	return Recurrence{kind: RecurrenceNone}
}

// WeeklyRecurrence repeats on the weekday of the shift's start time
func WeeklyRecurrence() Recurrence {
	return Recurrence{kind: RecurrenceWeekly}
}

// MonthlyRecurrence repeats on the given day of the month, clamped to the
// last valid day of shorter months
func MonthlyRecurrence(dayOfMonth int) (Recurrence, error) {
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return Recurrence{}, fmt.Errorf("day of month must be 1-31, got %d", dayOfMonth)
	}
	return Recurrence{kind: RecurrenceMonthly, dayOfMonth: dayOfMonth}, nil
}

// Kind returns the recurrence variant
func (r Recurrence) Kind() RecurrenceKind {
	if r.kind == "" {
		return RecurrenceNone
	}
	return r.kind
}

// IsRecurring reports whether the shift repeats
func (r Recurrence) IsRecurring() bool {
	return r.Kind() != RecurrenceNone
}

// DayOfMonth returns the anchor day for the monthly variant; zero otherwise
func (r Recurrence) DayOfMonth() int {
	if r.Kind() != RecurrenceMonthly {
		return 0
	}
	return r.dayOfMonth
}

// ParseRecurrence builds a Recurrence from the wire representation: an
// is_recurring flag plus an optional rule name. The monthly day anchor is
// taken from the shift's start day.
func ParseRecurrence(isRecurring bool, rule string, startDay int) (Recurrence, error) {
	if !isRecurring {
		if rule != "" {
			return Recurrence{}, fmt.Errorf("recurrence rule %q set on a non-recurring shift", rule)
		}
		return NoRecurrence(), nil
	}
	switch RecurrenceKind(rule) {
	case RecurrenceWeekly:
		return WeeklyRecurrence(), nil
	case RecurrenceMonthly:
		return MonthlyRecurrence(startDay)
	default:
		return Recurrence{}, fmt.Errorf("unknown recurrence rule %q", rule)
	}
}
