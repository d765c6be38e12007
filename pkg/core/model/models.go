package model

import "time"

// ShiftStatus is the lifecycle state of a shift
type ShiftStatus string

const (
	ShiftDraft      ShiftStatus = "draft"
	ShiftPublished  ShiftStatus = "published"
	ShiftAssigned   ShiftStatus = "assigned"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCancelled  ShiftStatus = "cancelled"
)

func (s ShiftStatus) IsValid() bool {
	switch s {
	case ShiftDraft, ShiftPublished, ShiftAssigned, ShiftInProgress, ShiftCompleted, ShiftCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s
func (s ShiftStatus) IsTerminal() bool {
	return s == ShiftCompleted || s == ShiftCancelled
}

// AssignmentStatus is the state of a staff-to-shift assignment
type AssignmentStatus string

const (
	AssignmentOffered  AssignmentStatus = "offered"
	AssignmentAccepted AssignmentStatus = "accepted"
	AssignmentDeclined AssignmentStatus = "declined"
	AssignmentReplaced AssignmentStatus = "replaced"
)

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentOffered, AssignmentAccepted, AssignmentDeclined, AssignmentReplaced:
		return true
	}
	return false
}

// IsActive reports whether the assignment still binds its staff member to the
// shift. At most one active assignment may exist per shift at any time.
func (s AssignmentStatus) IsActive() bool {
	return s == AssignmentOffered || s == AssignmentAccepted
}

// Shift represents one scheduled period of care delivery for a client
type Shift struct {
	ID            string
	CompanyID     string
	ClientID      string
	ShiftTypeID   string // empty if the shift has no template
	CareServiceID string
	StartTime     time.Time
	EndTime       time.Time
	Status        ShiftStatus
	Recurrence    Recurrence
	BreakMinutes  int
	Location      string
	Notes         string
	Instructions  string
	IsActive      bool
}

// ShiftType is a named template a shift may optionally reference for
// default duration and pricing
type ShiftType struct {
	ID            string
	CompanyID     string
	Name          string
	DurationHours float64
	HourlyRate    float64
}

// Staff represents a company worker
type Staff struct {
	ID             string
	CompanyID      string
	FirstName      string
	LastName       string
	Email          string
	HourlyRate     float64
	Qualifications []string
	IsActive       bool
}

// FullName returns the staff member's display name
func (s Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Client represents a service recipient
type Client struct {
	ID        string
	CompanyID string
	FirstName string
	LastName  string
	IsActive  bool
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CareService names the kind of care delivered during a shift
type CareService struct {
	ID        string
	CompanyID string
	Name      string
}

// ShiftStaffAssignment binds a staff member to a shift for a period.
// Replaced assignments are kept as history rather than deleted.
type ShiftStaffAssignment struct {
	ID         string
	ShiftID    string
	StaffID    string
	Status     AssignmentStatus
	AssignedAt time.Time
	Notes      string
	StartTime  time.Time
	EndTime    time.Time
}
