package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecurrence(t *testing.T) {
	tests := []struct {
		name        string
		isRecurring bool
		rule        string
		startDay    int
		wantKind    RecurrenceKind
		wantErr     bool
	}{
		{"non-recurring", false, "", 10, RecurrenceNone, false},
		{"weekly", true, "weekly", 10, RecurrenceWeekly, false},
		{"monthly", true, "monthly", 31, RecurrenceMonthly, false},
		{"rule without flag", false, "weekly", 10, "", true},
		{"flag without rule", true, "", 10, "", true},
		{"unknown rule", true, "daily", 10, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecurrence(tt.isRecurring, tt.rule, tt.startDay)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind())
		})
	}
}

func TestMonthlyRecurrence_DayBounds(t *testing.T) {
	_, err := MonthlyRecurrence(0)
	require.Error(t, err)
	_, err = MonthlyRecurrence(32)
	require.Error(t, err)

	r, err := MonthlyRecurrence(31)
	require.NoError(t, err)
	assert.Equal(t, 31, r.DayOfMonth())
	assert.True(t, r.IsRecurring())
}

func TestZeroRecurrenceIsNone(t *testing.T) {
	var r Recurrence
	assert.Equal(t, RecurrenceNone, r.Kind())
	assert.False(t, r.IsRecurring())
	assert.Zero(t, r.DayOfMonth())
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, ShiftCompleted.IsTerminal())
	assert.True(t, ShiftCancelled.IsTerminal())
	assert.False(t, ShiftAssigned.IsTerminal())
	assert.False(t, ShiftStatus("archived").IsValid())

	assert.True(t, AssignmentOffered.IsActive())
	assert.True(t, AssignmentAccepted.IsActive())
	assert.False(t, AssignmentReplaced.IsActive())
	assert.False(t, AssignmentDeclined.IsActive())
}
