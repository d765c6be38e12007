package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/careshift/pkg/core/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func oneOffShift(start time.Time) model.Shift {
	return model.Shift{
		ID:         "shift-1",
		StartTime:  start,
		EndTime:    start.Add(8 * time.Hour),
		Recurrence: model.NoRecurrence(),
	}
}

func TestExpand_NonRecurring(t *testing.T) {
	// Monday 9:00
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	shift := oneOffShift(start)

	tests := []struct {
		name        string
		windowStart time.Time
		windowEnd   time.Time
		want        []time.Time
	}{
		{
			name:        "inside window",
			windowStart: date(2025, 3, 10),
			windowEnd:   date(2025, 3, 16),
			want:        []time.Time{date(2025, 3, 10)},
		},
		{
			name:        "window before shift",
			windowStart: date(2025, 3, 3),
			windowEnd:   date(2025, 3, 9),
			want:        nil,
		},
		{
			name:        "window after shift",
			windowStart: date(2025, 3, 17),
			windowEnd:   date(2025, 3, 23),
			want:        nil,
		},
		{
			name:        "inverted window",
			windowStart: date(2025, 3, 16),
			windowEnd:   date(2025, 3, 10),
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(shift, tt.windowStart, tt.windowEnd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_WeeklyTwoConsecutiveWeeks(t *testing.T) {
	// Monday 09:00-17:00, weekly
	shift := model.Shift{
		ID:         "shift-weekly",
		StartTime:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
		Recurrence: model.WeeklyRecurrence(),
	}

	// Mon-Sun across two consecutive weeks
	got, err := Expand(shift, date(2025, 3, 10), date(2025, 3, 23))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, date(2025, 3, 10), got[0])
	assert.Equal(t, date(2025, 3, 17), got[1])
	assert.Equal(t, 7*24*time.Hour, got[1].Sub(got[0]))
}

func TestExpand_WeeklyStartsNoEarlierThanShift(t *testing.T) {
	shift := model.Shift{
		ID:         "shift-weekly",
		StartTime:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), // Monday
		EndTime:    time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
		Recurrence: model.WeeklyRecurrence(),
	}

	// Window covers the two Mondays before the shift exists plus two after
	got, err := Expand(shift, date(2025, 2, 24), date(2025, 3, 17))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{date(2025, 3, 10), date(2025, 3, 17)}, got)
}

func TestExpand_WeeklyKeepsWeekday(t *testing.T) {
	// Thursday start
	shift := model.Shift{
		ID:         "shift-thu",
		StartTime:  time.Date(2025, 1, 2, 14, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 1, 2, 22, 0, 0, 0, time.UTC),
		Recurrence: model.WeeklyRecurrence(),
	}

	got, err := Expand(shift, date(2025, 1, 1), date(2025, 1, 31))
	require.NoError(t, err)

	require.NotEmpty(t, got)
	for _, occ := range got {
		assert.Equal(t, time.Thursday, occ.Weekday())
	}
	assert.Len(t, got, 5) // Jan 2025 has five Thursdays
}

func TestExpand_MonthlyClampsShortMonths(t *testing.T) {
	recurrence, err := model.MonthlyRecurrence(31)
	require.NoError(t, err)

	shift := model.Shift{
		ID:         "shift-monthly",
		StartTime:  time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 1, 31, 17, 0, 0, 0, time.UTC),
		Recurrence: recurrence,
	}

	got, err := Expand(shift, date(2025, 1, 1), date(2025, 4, 30))
	require.NoError(t, err)

	// February clamps to 28, April to 30
	assert.Equal(t, []time.Time{
		date(2025, 1, 31),
		date(2025, 2, 28),
		date(2025, 3, 31),
		date(2025, 4, 30),
	}, got)
}

func TestExpand_MonthlyLeapFebruary(t *testing.T) {
	recurrence, err := model.MonthlyRecurrence(30)
	require.NoError(t, err)

	shift := model.Shift{
		ID:         "shift-monthly",
		StartTime:  time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2023, 12, 30, 17, 0, 0, 0, time.UTC),
		Recurrence: recurrence,
	}

	got, err := Expand(shift, date(2024, 2, 1), date(2024, 2, 29))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, 2, 29)}, got)
}

func TestExpand_MonthlyRespectsAnchor(t *testing.T) {
	recurrence, err := model.MonthlyRecurrence(15)
	require.NoError(t, err)

	shift := model.Shift{
		ID:         "shift-monthly",
		StartTime:  time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 3, 15, 17, 0, 0, 0, time.UTC),
		Recurrence: recurrence,
	}

	// January and February precede the shift's first occurrence
	got, err := Expand(shift, date(2025, 1, 1), date(2025, 4, 30))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2025, 3, 15), date(2025, 4, 15)}, got)
}

func TestExpand_IsIdempotent(t *testing.T) {
	shift := model.Shift{
		ID:         "shift-weekly",
		StartTime:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
		Recurrence: model.WeeklyRecurrence(),
	}

	first, err := Expand(shift, date(2025, 3, 1), date(2025, 5, 31))
	require.NoError(t, err)
	second, err := Expand(shift, date(2025, 3, 1), date(2025, 5, 31))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
