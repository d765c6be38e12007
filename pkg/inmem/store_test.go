package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/careshift/pkg/core/fault"
	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/db"
)

func seedShift(t *testing.T, store *Store, id string, start time.Time, status model.ShiftStatus) model.Shift {
	t.Helper()
	shift := model.Shift{
		ID:            id,
		CompanyID:     "co-1",
		ClientID:      "client-1",
		CareServiceID: "svc-1",
		StartTime:     start,
		EndTime:       start.Add(8 * time.Hour),
		Status:        status,
		IsActive:      true,
	}
	require.NoError(t, store.CreateShift(context.Background(), &shift))
	return shift
}

func TestListShifts_Filters(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seedShift(t, store, "shift-1", monday, model.ShiftDraft)
	seedShift(t, store, "shift-2", monday.AddDate(0, 0, 1), model.ShiftAssigned)
	seedShift(t, store, "shift-3", monday.AddDate(0, 0, 14), model.ShiftDraft)

	tests := []struct {
		name    string
		filters db.ShiftFilters
		want    []string
	}{
		{"no filters", db.ShiftFilters{}, []string{"shift-1", "shift-2", "shift-3"}},
		{"status", db.ShiftFilters{Status: model.ShiftAssigned}, []string{"shift-2"}},
		{"window", db.ShiftFilters{From: monday, To: monday.AddDate(0, 0, 6)}, []string{"shift-1", "shift-2"}},
		{"company mismatch", db.ShiftFilters{CompanyID: "co-2"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shifts, err := store.ListShifts(ctx, tt.filters)
			require.NoError(t, err)

			var got []string
			for _, s := range shifts {
				got = append(got, s.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListShifts_ExcludesInactiveByDefault(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	shift := seedShift(t, store, "shift-1", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), model.ShiftCancelled)
	shift.IsActive = false
	require.NoError(t, store.UpdateShift(ctx, &shift))

	shifts, err := store.ListShifts(ctx, db.ShiftFilters{})
	require.NoError(t, err)
	assert.Empty(t, shifts)

	shifts, err = store.ListShifts(ctx, db.ShiftFilters{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, shifts, 1)
}

func TestApplyAssignmentMutation_IsAllOrNothing(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	shift := seedShift(t, store, "shift-1", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), model.ShiftDraft)

	assigned := model.ShiftAssigned
	good := &model.ShiftStaffAssignment{
		ID:      "a1",
		ShiftID: shift.ID,
		StaffID: "staff-1",
		Status:  model.AssignmentAccepted,
	}

	// Mutation referencing a missing assignment must change nothing at
	// all, including the shift status and the create half
	err := store.ApplyAssignmentMutation(ctx, db.AssignmentMutation{
		ShiftID:     shift.ID,
		Update:      []model.ShiftStaffAssignment{{ID: "a-missing"}},
		Create:      good,
		ShiftStatus: &assigned,
	})
	require.Error(t, err)
	assert.True(t, fault.IsNotFound(err))

	stored, err := store.GetShift(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftDraft, stored.Status)

	assignments, err := store.ListAssignmentsByShift(ctx, shift.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	// The same mutation without the bad update applies fully
	err = store.ApplyAssignmentMutation(ctx, db.AssignmentMutation{
		ShiftID:     shift.ID,
		Create:      good,
		ShiftStatus: &assigned,
	})
	require.NoError(t, err)

	stored, err = store.GetShift(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftAssigned, stored.Status)

	assignments, err = store.ListAssignmentsByShift(ctx, shift.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestGetShift_ReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	seedShift(t, store, "shift-1", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), model.ShiftDraft)

	first, err := store.GetShift(ctx, "shift-1")
	require.NoError(t, err)
	first.Status = model.ShiftCancelled

	second, err := store.GetShift(ctx, "shift-1")
	require.NoError(t, err)
	assert.Equal(t, model.ShiftDraft, second.Status, "mutating a returned shift must not touch store state")
}

func TestNotFoundFaults(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.GetShift(ctx, "missing")
	assert.True(t, fault.IsNotFound(err))

	_, err = store.GetAssignment(ctx, "missing")
	assert.True(t, fault.IsNotFound(err))

	_, err = store.GetStaff(ctx, "missing")
	assert.True(t, fault.IsNotFound(err))

	_, err = store.GetClient(ctx, "missing")
	assert.True(t, fault.IsNotFound(err))

	err = store.DeleteShift(ctx, "missing")
	assert.True(t, fault.IsNotFound(err))
}
