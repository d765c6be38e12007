package postgres

import (
	"context"
	"fmt"

	"github.com/careops/careshift/pkg/core/model"
)

// GetStaff retrieves a staff member by id
func (d *DB) GetStaff(ctx context.Context, id string) (*model.Staff, error) {
	var s model.Staff
	var email *string
	err := d.pool.QueryRow(ctx, `
		SELECT id, company_id, first_name, last_name, email, hourly_rate, qualifications, is_active
		FROM staff WHERE id = $1
	`, id).Scan(&s.ID, &s.CompanyID, &s.FirstName, &s.LastName, &email,
		&s.HourlyRate, &s.Qualifications, &s.IsActive)
	if err != nil {
		return nil, storeErr(err, "failed to fetch staff %s", id)
	}
	if email != nil {
		s.Email = *email
	}
	return &s, nil
}

// ListStaff retrieves all staff for a company, ordered by name
func (d *DB) ListStaff(ctx context.Context, companyID string) ([]model.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, company_id, first_name, last_name, email, hourly_rate, qualifications, is_active
		FROM staff WHERE company_id = $1
		ORDER BY last_name, first_name
	`, companyID)
	if err != nil {
		return nil, storeErr(err, "failed to query staff")
	}
	defer rows.Close()

	var members []model.Staff
	for rows.Next() {
		var s model.Staff
		var email *string
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.FirstName, &s.LastName, &email,
			&s.HourlyRate, &s.Qualifications, &s.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		if email != nil {
			s.Email = *email
		}
		members = append(members, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "error iterating staff")
	}
	return members, nil
}

// GetClient retrieves a client by id
func (d *DB) GetClient(ctx context.Context, id string) (*model.Client, error) {
	var c model.Client
	err := d.pool.QueryRow(ctx, `
		SELECT id, company_id, first_name, last_name, is_active
		FROM client WHERE id = $1
	`, id).Scan(&c.ID, &c.CompanyID, &c.FirstName, &c.LastName, &c.IsActive)
	if err != nil {
		return nil, storeErr(err, "failed to fetch client %s", id)
	}
	return &c, nil
}

// ListClients retrieves all clients for a company, ordered by name
func (d *DB) ListClients(ctx context.Context, companyID string) ([]model.Client, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, company_id, first_name, last_name, is_active
		FROM client WHERE company_id = $1
		ORDER BY last_name, first_name
	`, companyID)
	if err != nil {
		return nil, storeErr(err, "failed to query clients")
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.FirstName, &c.LastName, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "error iterating clients")
	}
	return clients, nil
}

// ListCareServices retrieves all care services for a company
func (d *DB) ListCareServices(ctx context.Context, companyID string) ([]model.CareService, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, company_id, name
		FROM care_service WHERE company_id = $1
		ORDER BY name
	`, companyID)
	if err != nil {
		return nil, storeErr(err, "failed to query care services")
	}
	defer rows.Close()

	var services []model.CareService
	for rows.Next() {
		var s model.CareService
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan care service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "error iterating care services")
	}
	return services, nil
}

// GetShiftType retrieves a shift type by id
func (d *DB) GetShiftType(ctx context.Context, id string) (*model.ShiftType, error) {
	var st model.ShiftType
	err := d.pool.QueryRow(ctx, `
		SELECT id, company_id, name, duration_hours, hourly_rate
		FROM shift_type WHERE id = $1
	`, id).Scan(&st.ID, &st.CompanyID, &st.Name, &st.DurationHours, &st.HourlyRate)
	if err != nil {
		return nil, storeErr(err, "failed to fetch shift type %s", id)
	}
	return &st, nil
}

// ListShiftTypes retrieves all shift types for a company
func (d *DB) ListShiftTypes(ctx context.Context, companyID string) ([]model.ShiftType, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, company_id, name, duration_hours, hourly_rate
		FROM shift_type WHERE company_id = $1
		ORDER BY name
	`, companyID)
	if err != nil {
		return nil, storeErr(err, "failed to query shift types")
	}
	defer rows.Close()

	var types []model.ShiftType
	for rows.Next() {
		var st model.ShiftType
		if err := rows.Scan(&st.ID, &st.CompanyID, &st.Name, &st.DurationHours, &st.HourlyRate); err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		types = append(types, st)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "error iterating shift types")
	}
	return types, nil
}
