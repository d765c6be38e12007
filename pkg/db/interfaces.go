// Package db defines the persistence interfaces the scheduling core depends
// on. Implementations translate their transport failures into the fault
// taxonomy: validation faults never reach a store, missing rows surface as
// not-found, and network or timeout failures surface as transient.
package db

import (
	"context"
	"time"

	"github.com/careops/careshift/pkg/core/model"
)

// ShiftFilters narrows a shift listing. Zero values mean "all"; From/To
// bound the shift start time when non-zero.
type ShiftFilters struct {
	CompanyID       string
	ClientID        string
	ShiftTypeID     string
	Status          model.ShiftStatus
	From            time.Time
	To              time.Time
	IncludeInactive bool
}

// AssignmentMutation is the atomic write unit produced by the assignment
// manager. Every field that is set commits together with the others or not
// at all, so a caller can never observe an assignment change without its
// shift-status consequence.
type AssignmentMutation struct {
	ShiftID     string
	Create      *model.ShiftStaffAssignment
	Update      []model.ShiftStaffAssignment
	Delete      []string
	ShiftStatus *model.ShiftStatus
}

// ShiftStore provides shift record operations
type ShiftStore interface {
	GetShift(ctx context.Context, id string) (*model.Shift, error)
	ListShifts(ctx context.Context, filters ShiftFilters) ([]model.Shift, error)
	CreateShift(ctx context.Context, shift *model.Shift) error
	UpdateShift(ctx context.Context, shift *model.Shift) error
	DeleteShift(ctx context.Context, id string) error
}

// AssignmentStore provides assignment record operations. All writes go
// through ApplyAssignmentMutation so they stay atomic with their shift
// status change.
type AssignmentStore interface {
	GetAssignment(ctx context.Context, id string) (*model.ShiftStaffAssignment, error)
	ListAssignmentsByShift(ctx context.Context, shiftID string) ([]model.ShiftStaffAssignment, error)
	ApplyAssignmentMutation(ctx context.Context, mutation AssignmentMutation) error
}

// StaffStore provides staff lookups
type StaffStore interface {
	GetStaff(ctx context.Context, id string) (*model.Staff, error)
	ListStaff(ctx context.Context, companyID string) ([]model.Staff, error)
}

// ClientStore provides client lookups
type ClientStore interface {
	GetClient(ctx context.Context, id string) (*model.Client, error)
	ListClients(ctx context.Context, companyID string) ([]model.Client, error)
}

// CareServiceStore provides care service lookups
type CareServiceStore interface {
	ListCareServices(ctx context.Context, companyID string) ([]model.CareService, error)
}

// ShiftTypeStore provides shift type lookups
type ShiftTypeStore interface {
	GetShiftType(ctx context.Context, id string) (*model.ShiftType, error)
	ListShiftTypes(ctx context.Context, companyID string) ([]model.ShiftType, error)
}

// Store is the full persistence surface
type Store interface {
	ShiftStore
	AssignmentStore
	StaffStore
	ClientStore
	CareServiceStore
	ShiftTypeStore
}
