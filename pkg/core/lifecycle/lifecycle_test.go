package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/careshift/pkg/core/fault"
	"github.com/careops/careshift/pkg/core/model"
)

func TestApply_LegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		from model.ShiftStatus
		to   model.ShiftStatus
	}{
		{"draft to published", model.ShiftDraft, model.ShiftPublished},
		{"draft to assigned", model.ShiftDraft, model.ShiftAssigned},
		{"draft to cancelled", model.ShiftDraft, model.ShiftCancelled},
		{"published to assigned", model.ShiftPublished, model.ShiftAssigned},
		{"published back to draft", model.ShiftPublished, model.ShiftDraft},
		{"assigned to in_progress", model.ShiftAssigned, model.ShiftInProgress},
		{"assigned back to draft", model.ShiftAssigned, model.ShiftDraft},
		{"in_progress to completed", model.ShiftInProgress, model.ShiftCompleted},
		{"in_progress to cancelled", model.ShiftInProgress, model.ShiftCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestApply_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		from model.ShiftStatus
		to   model.ShiftStatus
	}{
		{"draft cannot jump to in_progress", model.ShiftDraft, model.ShiftInProgress},
		{"draft cannot jump to completed", model.ShiftDraft, model.ShiftCompleted},
		{"published cannot jump to completed", model.ShiftPublished, model.ShiftCompleted},
		{"in_progress cannot revert to draft", model.ShiftInProgress, model.ShiftDraft},
		{"completed is terminal", model.ShiftCompleted, model.ShiftDraft},
		{"completed cannot be cancelled", model.ShiftCompleted, model.ShiftCancelled},
		{"cancelled is terminal", model.ShiftCancelled, model.ShiftAssigned},
		{"cancelled cannot complete", model.ShiftCancelled, model.ShiftCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.from, tt.to)
			require.Error(t, err)
			assert.True(t, fault.IsConflict(err), "expected a conflict fault, got %v", err)
			assert.Equal(t, tt.from, got, "status must not move on a rejected transition")
		})
	}
}

func TestApply_SameStatusIsNoOp(t *testing.T) {
	for _, status := range []model.ShiftStatus{
		model.ShiftDraft, model.ShiftAssigned, model.ShiftCompleted, model.ShiftCancelled,
	} {
		got, err := Apply(status, status)
		require.NoError(t, err)
		assert.Equal(t, status, got)
	}
}

func TestApply_UnknownStatus(t *testing.T) {
	_, err := Apply(model.ShiftDraft, model.ShiftStatus("archived"))
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
}

func TestOnFirstActiveAssignment(t *testing.T) {
	assert.Equal(t, model.ShiftAssigned, OnFirstActiveAssignment(model.ShiftDraft))
	assert.Equal(t, model.ShiftAssigned, OnFirstActiveAssignment(model.ShiftPublished))
	// Shifts already underway or finished keep their status
	assert.Equal(t, model.ShiftInProgress, OnFirstActiveAssignment(model.ShiftInProgress))
	assert.Equal(t, model.ShiftCompleted, OnFirstActiveAssignment(model.ShiftCompleted))
}

func TestOnLastActiveAssignmentRemoved(t *testing.T) {
	assert.Equal(t, model.ShiftDraft, OnLastActiveAssignmentRemoved(model.ShiftAssigned))
	assert.Equal(t, model.ShiftDraft, OnLastActiveAssignmentRemoved(model.ShiftDraft))
	assert.Equal(t, model.ShiftInProgress, OnLastActiveAssignmentRemoved(model.ShiftInProgress))
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	all := []model.ShiftStatus{
		model.ShiftDraft, model.ShiftPublished, model.ShiftAssigned,
		model.ShiftInProgress, model.ShiftCompleted, model.ShiftCancelled,
	}
	for _, to := range all {
		assert.False(t, CanTransition(model.ShiftCompleted, to))
		assert.False(t, CanTransition(model.ShiftCancelled, to))
	}
}
