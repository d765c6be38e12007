// Package inmem is an in-memory implementation of the db store interfaces.
// It backs the unit tests and the CLI's offline mode; all operations copy
// records on the way in and out so callers never alias store state.
package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/careops/careshift/pkg/core/fault"
	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/db"
)

// Store holds all entity records behind one mutex
type Store struct {
	mu           sync.Mutex
	shifts       map[string]model.Shift
	assignments  map[string]model.ShiftStaffAssignment
	staff        map[string]model.Staff
	clients      map[string]model.Client
	careServices map[string]model.CareService
	shiftTypes   map[string]model.ShiftType
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		shifts:       make(map[string]model.Shift),
		assignments:  make(map[string]model.ShiftStaffAssignment),
		staff:        make(map[string]model.Staff),
		clients:      make(map[string]model.Client),
		careServices: make(map[string]model.CareService),
		shiftTypes:   make(map[string]model.ShiftType),
	}
}

var _ db.Store = (*Store)(nil)

// GetShift returns the shift with the given id
func (s *Store) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, ok := s.shifts[id]
	if !ok {
		return nil, fault.NotFound("shift %s not found", id)
	}
	return &shift, nil
}

// ListShifts returns all shifts matching the filters, ordered by start time
func (s *Store) ListShifts(ctx context.Context, filters db.ShiftFilters) ([]model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shifts []model.Shift
	for _, shift := range s.shifts {
		if !matchesFilters(shift, filters) {
			continue
		}
		shifts = append(shifts, shift)
	}
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].StartTime.Equal(shifts[j].StartTime) {
			return shifts[i].ID < shifts[j].ID
		}
		return shifts[i].StartTime.Before(shifts[j].StartTime)
	})
	return shifts, nil
}

func matchesFilters(shift model.Shift, f db.ShiftFilters) bool {
	if !f.IncludeInactive && !shift.IsActive {
		return false
	}
	if f.CompanyID != "" && shift.CompanyID != f.CompanyID {
		return false
	}
	if f.ClientID != "" && shift.ClientID != f.ClientID {
		return false
	}
	if f.ShiftTypeID != "" && shift.ShiftTypeID != f.ShiftTypeID {
		return false
	}
	if f.Status != "" && shift.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && shift.StartTime.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && shift.StartTime.After(f.To) {
		return false
	}
	return true
}

// CreateShift stores a new shift record
func (s *Store) CreateShift(ctx context.Context, shift *model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shifts[shift.ID]; exists {
		return fault.Conflict("shift %s already exists", shift.ID)
	}
	s.shifts[shift.ID] = *shift
	return nil
}

// UpdateShift replaces an existing shift record
func (s *Store) UpdateShift(ctx context.Context, shift *model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shifts[shift.ID]; !ok {
		return fault.NotFound("shift %s not found", shift.ID)
	}
	s.shifts[shift.ID] = *shift
	return nil
}

// DeleteShift removes a shift record entirely
func (s *Store) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shifts[id]; !ok {
		return fault.NotFound("shift %s not found", id)
	}
	delete(s.shifts, id)
	return nil
}

// GetAssignment returns the assignment with the given id
func (s *Store) GetAssignment(ctx context.Context, id string) (*model.ShiftStaffAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignment, ok := s.assignments[id]
	if !ok {
		return nil, fault.NotFound("assignment %s not found", id)
	}
	return &assignment, nil
}

// ListAssignmentsByShift returns every assignment for a shift, oldest first
func (s *Store) ListAssignmentsByShift(ctx context.Context, shiftID string) ([]model.ShiftStaffAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var assignments []model.ShiftStaffAssignment
	for _, a := range s.assignments {
		if a.ShiftID == shiftID {
			assignments = append(assignments, a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].AssignedAt.Equal(assignments[j].AssignedAt) {
			return assignments[i].ID < assignments[j].ID
		}
		return assignments[i].AssignedAt.Before(assignments[j].AssignedAt)
	})
	return assignments, nil
}

// ApplyAssignmentMutation applies all parts of the mutation under one lock
// so no partial state is ever observable
func (s *Store) ApplyAssignmentMutation(ctx context.Context, m db.AssignmentMutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, ok := s.shifts[m.ShiftID]
	if !ok {
		return fault.NotFound("shift %s not found", m.ShiftID)
	}
	for _, a := range m.Update {
		if _, ok := s.assignments[a.ID]; !ok {
			return fault.NotFound("assignment %s not found", a.ID)
		}
	}
	for _, id := range m.Delete {
		if _, ok := s.assignments[id]; !ok {
			return fault.NotFound("assignment %s not found", id)
		}
	}
	if m.Create != nil {
		if _, exists := s.assignments[m.Create.ID]; exists {
			return fault.Conflict("assignment %s already exists", m.Create.ID)
		}
	}

	// All checks passed; apply everything
	for _, a := range m.Update {
		s.assignments[a.ID] = a
	}
	for _, id := range m.Delete {
		delete(s.assignments, id)
	}
	if m.Create != nil {
		s.assignments[m.Create.ID] = *m.Create
	}
	if m.ShiftStatus != nil {
		shift.Status = *m.ShiftStatus
		s.shifts[shift.ID] = shift
	}
	return nil
}

// GetStaff returns the staff member with the given id
func (s *Store) GetStaff(ctx context.Context, id string) (*model.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff, ok := s.staff[id]
	if !ok {
		return nil, fault.NotFound("staff %s not found", id)
	}
	return &staff, nil
}

// ListStaff returns all staff for a company, ordered by name
func (s *Store) ListStaff(ctx context.Context, companyID string) ([]model.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var members []model.Staff
	for _, member := range s.staff {
		if companyID == "" || member.CompanyID == companyID {
			members = append(members, member)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].LastName == members[j].LastName {
			return members[i].FirstName < members[j].FirstName
		}
		return members[i].LastName < members[j].LastName
	})
	return members, nil
}

// GetClient returns the client with the given id
func (s *Store) GetClient(ctx context.Context, id string) (*model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[id]
	if !ok {
		return nil, fault.NotFound("client %s not found", id)
	}
	return &client, nil
}

// ListClients returns all clients for a company, ordered by name
func (s *Store) ListClients(ctx context.Context, companyID string) ([]model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var clients []model.Client
	for _, client := range s.clients {
		if companyID == "" || client.CompanyID == companyID {
			clients = append(clients, client)
		}
	}
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].LastName == clients[j].LastName {
			return clients[i].FirstName < clients[j].FirstName
		}
		return clients[i].LastName < clients[j].LastName
	})
	return clients, nil
}

// ListCareServices returns all care services for a company
func (s *Store) ListCareServices(ctx context.Context, companyID string) ([]model.CareService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var services []model.CareService
	for _, svc := range s.careServices {
		if companyID == "" || svc.CompanyID == companyID {
			services = append(services, svc)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

// GetShiftType returns the shift type with the given id
func (s *Store) GetShiftType(ctx context.Context, id string) (*model.ShiftType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shiftType, ok := s.shiftTypes[id]
	if !ok {
		return nil, fault.NotFound("shift type %s not found", id)
	}
	return &shiftType, nil
}

// ListShiftTypes returns all shift types for a company
func (s *Store) ListShiftTypes(ctx context.Context, companyID string) ([]model.ShiftType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var types []model.ShiftType
	for _, st := range s.shiftTypes {
		if companyID == "" || st.CompanyID == companyID {
			types = append(types, st)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

// Seed helpers used by tests and the CLI's offline mode

// PutStaff inserts or replaces a staff record
func (s *Store) PutStaff(member model.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[member.ID] = member
}

// PutClient inserts or replaces a client record
func (s *Store) PutClient(client model.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client.ID] = client
}

// PutCareService inserts or replaces a care service record
func (s *Store) PutCareService(svc model.CareService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.careServices[svc.ID] = svc
}

// PutShiftType inserts or replaces a shift type record
func (s *Store) PutShiftType(st model.ShiftType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shiftTypes[st.ID] = st
}
