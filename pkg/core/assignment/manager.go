// Package assignment owns every staff-to-shift assignment mutation. It is
// the only component that creates, replaces, or removes assignments, and it
// routes every shift-status consequence through the lifecycle package.
package assignment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careops/careshift/pkg/core/fault"
	"github.com/careops/careshift/pkg/core/lifecycle"
	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/db"
)

// Store defines the database operations needed by the manager
type Store interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	GetStaff(ctx context.Context, id string) (*model.Staff, error)
	GetAssignment(ctx context.Context, id string) (*model.ShiftStaffAssignment, error)
	ListAssignmentsByShift(ctx context.Context, shiftID string) ([]model.ShiftStaffAssignment, error)
	ApplyAssignmentMutation(ctx context.Context, mutation db.AssignmentMutation) error
}

// Manager serializes assignment mutations per shift and enforces the
// at-most-one-active-assignment invariant
type Manager struct {
	store  Store
	logger *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewManager creates an assignment manager over the given store
func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// beginShiftMutation claims the shift for a single mutation. A second
// mutation arriving while one is still in flight is rejected with a
// conflict rather than queued.
func (m *Manager) beginShiftMutation(shiftID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.inFlight[shiftID]; busy {
		return fault.Conflict("another mutation for shift %s is already in flight", shiftID)
	}
	m.inFlight[shiftID] = struct{}{}
	return nil
}

func (m *Manager) endShiftMutation(shiftID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, shiftID)
}

// ReplaceResult holds both halves of an atomic staff replacement
type ReplaceResult struct {
	Replaced *model.ShiftStaffAssignment
	Created  *model.ShiftStaffAssignment
}

// RemoveResult reports the shift-status consequence of removing an assignment
type RemoveResult struct {
	AssignmentID string
	ShiftStatus  model.ShiftStatus
	Reverted     bool
}

// CreateAssignment assigns a staff member to a shift. The shift must have no
// active assignment; a caller wanting to change staff uses ReplaceStaff
// instead. The new assignment is accepted immediately and the shift moves to
// assigned unless it is already in progress.
func (m *Manager) CreateAssignment(ctx context.Context, shiftID, staffID, notes string) (*model.ShiftStaffAssignment, error) {
	if shiftID == "" {
		return nil, fault.Validation("shift id is required")
	}
	if staffID == "" {
		return nil, fault.Validation("staff id is required")
	}

	if err := m.beginShiftMutation(shiftID); err != nil {
		return nil, err
	}
	defer m.endShiftMutation(shiftID)

	m.logger.Debug("Creating assignment",
		zap.String("shift_id", shiftID),
		zap.String("staff_id", staffID))

	shift, staff, err := m.loadShiftAndStaff(ctx, shiftID, staffID)
	if err != nil {
		return nil, err
	}

	assignments, err := m.store.ListAssignmentsByShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for shift %s: %w", shiftID, err)
	}
	if active := findActive(assignments); active != nil {
		return nil, fault.Conflict("shift %s already has an active assignment %s for staff %s; replace it instead",
			shiftID, active.ID, active.StaffID)
	}

	created := &model.ShiftStaffAssignment{
		ID:         uuid.New().String(),
		ShiftID:    shift.ID,
		StaffID:    staff.ID,
		Status:     model.AssignmentAccepted,
		AssignedAt: time.Now().UTC(),
		Notes:      notes,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}

	mutation := db.AssignmentMutation{
		ShiftID: shift.ID,
		Create:  created,
	}
	if next := lifecycle.OnFirstActiveAssignment(shift.Status); next != shift.Status {
		mutation.ShiftStatus = &next
	}

	if err := m.store.ApplyAssignmentMutation(ctx, mutation); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	m.logger.Info("Assignment created",
		zap.String("assignment_id", created.ID),
		zap.String("shift_id", shift.ID),
		zap.String("staff_id", staff.ID),
		zap.Bool("shift_status_changed", mutation.ShiftStatus != nil))

	return created, nil
}

// ReplaceStaff atomically marks the existing assignment replaced and creates
// a new active assignment for the same shift. Both halves commit together;
// the shift never has zero or two active assignments at any observable
// point.
func (m *Manager) ReplaceStaff(ctx context.Context, assignmentID, newStaffID, notes string) (*ReplaceResult, error) {
	if assignmentID == "" {
		return nil, fault.Validation("assignment id is required")
	}
	if newStaffID == "" {
		return nil, fault.Validation("staff id is required")
	}

	// The pre-gate fetch only locates the shift; every precondition is
	// re-evaluated on a fresh copy once the gate is held
	located, err := m.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment %s: %w", assignmentID, err)
	}

	if err := m.beginShiftMutation(located.ShiftID); err != nil {
		return nil, err
	}
	defer m.endShiftMutation(located.ShiftID)

	existing, err := m.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment %s: %w", assignmentID, err)
	}
	if !existing.Status.IsActive() {
		return nil, fault.Conflict("assignment %s is %s and cannot be replaced", existing.ID, existing.Status)
	}

	m.logger.Debug("Replacing staff on shift",
		zap.String("assignment_id", assignmentID),
		zap.String("shift_id", existing.ShiftID),
		zap.String("new_staff_id", newStaffID))

	shift, staff, err := m.loadShiftAndStaff(ctx, existing.ShiftID, newStaffID)
	if err != nil {
		return nil, err
	}
	if staff.ID == existing.StaffID {
		return nil, fault.Validation("staff %s already holds assignment %s", staff.ID, existing.ID)
	}

	replaced := *existing
	replaced.Status = model.AssignmentReplaced

	created := &model.ShiftStaffAssignment{
		ID:         uuid.New().String(),
		ShiftID:    shift.ID,
		StaffID:    staff.ID,
		Status:     model.AssignmentAccepted,
		AssignedAt: time.Now().UTC(),
		Notes:      notes,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}

	mutation := db.AssignmentMutation{
		ShiftID: shift.ID,
		Update:  []model.ShiftStaffAssignment{replaced},
		Create:  created,
	}

	if err := m.store.ApplyAssignmentMutation(ctx, mutation); err != nil {
		return nil, fmt.Errorf("failed to replace staff on shift %s: %w", shift.ID, err)
	}

	m.logger.Info("Staff replaced",
		zap.String("shift_id", shift.ID),
		zap.String("replaced_assignment_id", replaced.ID),
		zap.String("new_assignment_id", created.ID),
		zap.String("new_staff_id", staff.ID))

	return &ReplaceResult{Replaced: &replaced, Created: created}, nil
}

// RemoveAssignment deletes an assignment. Removing the shift's sole active
// assignment reverts an assigned shift to draft; leaving it marked assigned
// with nobody on it would violate the scheduling invariant.
func (m *Manager) RemoveAssignment(ctx context.Context, assignmentID string) (*RemoveResult, error) {
	if assignmentID == "" {
		return nil, fault.Validation("assignment id is required")
	}

	located, err := m.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment %s: %w", assignmentID, err)
	}

	if err := m.beginShiftMutation(located.ShiftID); err != nil {
		return nil, err
	}
	defer m.endShiftMutation(located.ShiftID)

	// Re-fetch under the gate; the status consequence below must not be
	// computed from a copy a concurrent mutation may have outdated
	existing, err := m.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment %s: %w", assignmentID, err)
	}

	shift, err := m.store.GetShift(ctx, existing.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", existing.ShiftID, err)
	}
	if shift.Status.IsTerminal() {
		return nil, fault.Conflict("shift %s is %s; its assignment history is read-only", shift.ID, shift.Status)
	}

	assignments, err := m.store.ListAssignmentsByShift(ctx, shift.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for shift %s: %w", shift.ID, err)
	}

	mutation := db.AssignmentMutation{
		ShiftID: shift.ID,
		Delete:  []string{existing.ID},
	}

	result := &RemoveResult{AssignmentID: existing.ID, ShiftStatus: shift.Status}
	if existing.Status.IsActive() && countActive(assignments) == 1 {
		if next := lifecycle.OnLastActiveAssignmentRemoved(shift.Status); next != shift.Status {
			mutation.ShiftStatus = &next
			result.ShiftStatus = next
			result.Reverted = true
		}
	}

	if err := m.store.ApplyAssignmentMutation(ctx, mutation); err != nil {
		return nil, fmt.Errorf("failed to remove assignment %s: %w", existing.ID, err)
	}

	m.logger.Info("Assignment removed",
		zap.String("assignment_id", existing.ID),
		zap.String("shift_id", shift.ID),
		zap.Bool("shift_reverted", result.Reverted))

	return result, nil
}

// loadShiftAndStaff fetches both mutation participants and rejects
// deactivated records
func (m *Manager) loadShiftAndStaff(ctx context.Context, shiftID, staffID string) (*model.Shift, *model.Staff, error) {
	shift, err := m.store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch shift %s: %w", shiftID, err)
	}
	if !shift.IsActive {
		return nil, nil, fault.Conflict("shift %s is deactivated", shiftID)
	}
	if shift.Status.IsTerminal() {
		return nil, nil, fault.Conflict("shift %s is %s; its assignments can no longer change", shiftID, shift.Status)
	}

	staff, err := m.store.GetStaff(ctx, staffID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch staff %s: %w", staffID, err)
	}
	if !staff.IsActive {
		return nil, nil, fault.Conflict("staff %s is inactive", staffID)
	}

	return shift, staff, nil
}

func findActive(assignments []model.ShiftStaffAssignment) *model.ShiftStaffAssignment {
	for i := range assignments {
		if assignments[i].Status.IsActive() {
			return &assignments[i]
		}
	}
	return nil
}

func countActive(assignments []model.ShiftStaffAssignment) int {
	count := 0
	for _, a := range assignments {
		if a.Status.IsActive() {
			count++
		}
	}
	return count
}
