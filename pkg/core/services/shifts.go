package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careops/careshift/pkg/core/fault"
	"github.com/careops/careshift/pkg/core/lifecycle"
	"github.com/careops/careshift/pkg/core/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// CreateShiftInput carries everything needed to create a shift
type CreateShiftInput struct {
	CompanyID      string    `validate:"required"`
	ClientID       string    `validate:"required"`
	CareServiceID  string    `validate:"required"`
	ShiftTypeID    string    `validate:"omitempty"`
	StartTime      time.Time `validate:"required"`
	EndTime        time.Time `validate:"required"`
	IsRecurring    bool
	RecurrenceRule string `validate:"omitempty,oneof=weekly monthly"`
	BreakMinutes   int    `validate:"min=0"`
	Location       string
	Notes          string
	Instructions   string
}

// CreateShiftStore defines the database operations needed to create a shift
type CreateShiftStore interface {
	GetClient(ctx context.Context, id string) (*model.Client, error)
	CreateShift(ctx context.Context, shift *model.Shift) error
}

// CreateShift validates the input and stores a new shift in draft status.
// Staff is assigned afterwards through the assignment manager.
func CreateShift(ctx context.Context, store CreateShiftStore, logger *zap.Logger, input CreateShiftInput) (*model.Shift, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fault.Validation("invalid shift input: %v", err)
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, fault.Validation("shift end time must be after its start time")
	}

	recurrence, err := model.ParseRecurrence(input.IsRecurring, input.RecurrenceRule, input.StartTime.Day())
	if err != nil {
		return nil, fault.Validation("invalid recurrence: %v", err)
	}

	client, err := store.GetClient(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client %s: %w", input.ClientID, err)
	}
	if !client.IsActive {
		return nil, fault.Conflict("client %s is inactive", client.ID)
	}

	shift := &model.Shift{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		ClientID:      input.ClientID,
		ShiftTypeID:   input.ShiftTypeID,
		CareServiceID: input.CareServiceID,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Status:        model.ShiftDraft,
		Recurrence:    recurrence,
		BreakMinutes:  input.BreakMinutes,
		Location:      input.Location,
		Notes:         input.Notes,
		Instructions:  input.Instructions,
		IsActive:      true,
	}

	if err := store.CreateShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	logger.Info("Shift created",
		zap.String("shift_id", shift.ID),
		zap.String("client_id", shift.ClientID),
		zap.Time("start", shift.StartTime),
		zap.String("recurrence", string(recurrence.Kind())))

	return shift, nil
}

// UpdateShiftPatch holds the editable fields of a shift; nil pointers leave
// the current value untouched. Status is deliberately absent: status changes
// go through ChangeShiftStatus only.
type UpdateShiftPatch struct {
	StartTime    *time.Time
	EndTime      *time.Time
	BreakMinutes *int
	ShiftTypeID  *string
	Location     *string
	Notes        *string
	Instructions *string
}

// UpdateShiftStore defines the database operations needed to update a shift
type UpdateShiftStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	UpdateShift(ctx context.Context, shift *model.Shift) error
}

// UpdateShift applies a patch to a shift. Completed and cancelled shifts are
// read-only; a patch producing end <= start is rejected before anything is
// written.
func UpdateShift(ctx context.Context, store UpdateShiftStore, logger *zap.Logger, shiftID string, patch UpdateShiftPatch) (*model.Shift, error) {
	if shiftID == "" {
		return nil, fault.Validation("shift id is required")
	}

	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", shiftID, err)
	}
	if shift.Status.IsTerminal() {
		return nil, fault.Conflict("shift %s is %s and can no longer be edited", shift.ID, shift.Status)
	}
	if !shift.IsActive {
		return nil, fault.Conflict("shift %s is deactivated", shift.ID)
	}

	if patch.StartTime != nil {
		shift.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		shift.EndTime = *patch.EndTime
	}
	if patch.BreakMinutes != nil {
		if *patch.BreakMinutes < 0 {
			return nil, fault.Validation("break minutes must not be negative")
		}
		shift.BreakMinutes = *patch.BreakMinutes
	}
	if patch.ShiftTypeID != nil {
		shift.ShiftTypeID = *patch.ShiftTypeID
	}
	if patch.Location != nil {
		shift.Location = *patch.Location
	}
	if patch.Notes != nil {
		shift.Notes = *patch.Notes
	}
	if patch.Instructions != nil {
		shift.Instructions = *patch.Instructions
	}

	if !shift.EndTime.After(shift.StartTime) {
		return nil, fault.Validation("shift end time must be after its start time")
	}

	if err := store.UpdateShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to update shift %s: %w", shift.ID, err)
	}

	logger.Info("Shift updated", zap.String("shift_id", shift.ID))
	return shift, nil
}

// ChangeShiftStatus moves a shift to a new status through the lifecycle
// state machine. This is the only path for direct status edits; assignment
// -driven transitions happen inside the assignment manager.
func ChangeShiftStatus(ctx context.Context, store UpdateShiftStore, logger *zap.Logger, shiftID string, to model.ShiftStatus) (*model.Shift, error) {
	if shiftID == "" {
		return nil, fault.Validation("shift id is required")
	}

	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", shiftID, err)
	}

	next, err := lifecycle.Apply(shift.Status, to)
	if err != nil {
		return nil, err
	}
	if next == shift.Status {
		return shift, nil
	}

	previous := shift.Status
	shift.Status = next
	if err := store.UpdateShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to update shift %s: %w", shift.ID, err)
	}

	logger.Info("Shift status changed",
		zap.String("shift_id", shift.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))

	return shift, nil
}

// DeleteShiftStore defines the database operations needed to delete a shift
type DeleteShiftStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	UpdateShift(ctx context.Context, shift *model.Shift) error
	DeleteShift(ctx context.Context, id string) error
	ListAssignmentsByShift(ctx context.Context, shiftID string) ([]model.ShiftStaffAssignment, error)
}

// DeleteShiftResult reports how the shift was removed
type DeleteShiftResult struct {
	ShiftID     string
	HardDeleted bool
}

// DeleteShift removes a shift. A shift with any assignment history is
// soft-deactivated (cancelled and flagged inactive) so the history stays
// auditable; only a shift nobody was ever assigned to is purged.
func DeleteShift(ctx context.Context, store DeleteShiftStore, logger *zap.Logger, shiftID string) (*DeleteShiftResult, error) {
	if shiftID == "" {
		return nil, fault.Validation("shift id is required")
	}

	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %s: %w", shiftID, err)
	}

	assignments, err := store.ListAssignmentsByShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for shift %s: %w", shiftID, err)
	}

	if len(assignments) == 0 {
		if err := store.DeleteShift(ctx, shiftID); err != nil {
			return nil, fmt.Errorf("failed to delete shift %s: %w", shiftID, err)
		}
		logger.Info("Shift hard-deleted", zap.String("shift_id", shiftID))
		return &DeleteShiftResult{ShiftID: shiftID, HardDeleted: true}, nil
	}

	if !shift.Status.IsTerminal() {
		next, err := lifecycle.Apply(shift.Status, model.ShiftCancelled)
		if err != nil {
			return nil, err
		}
		shift.Status = next
	}
	shift.IsActive = false
	if err := store.UpdateShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to deactivate shift %s: %w", shiftID, err)
	}

	logger.Info("Shift deactivated",
		zap.String("shift_id", shiftID),
		zap.Int("assignment_history", len(assignments)))

	return &DeleteShiftResult{ShiftID: shiftID, HardDeleted: false}, nil
}
