package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/db"
)

const shiftColumns = `id, company_id, client_id, shift_type_id, care_service_id,
	start_time, end_time, status, is_recurring, recurrence_rule,
	break_minutes, location, notes, instructions, is_active`

// GetShift retrieves a shift by id
func (d *DB) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shift WHERE id = $1`, id)
	shift, err := scanShift(row)
	if err != nil {
		return nil, storeErr(err, "failed to fetch shift %s", id)
	}
	return shift, nil
}

// ListShifts retrieves shifts matching the filters, ordered by start time
func (d *DB) ListShifts(ctx context.Context, filters db.ShiftFilters) ([]model.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shift WHERE 1=1`
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(" AND %s $%d", clause, len(args))
	}

	if !filters.IncludeInactive {
		query += " AND is_active"
	}
	if filters.CompanyID != "" {
		add("company_id =", filters.CompanyID)
	}
	if filters.ClientID != "" {
		add("client_id =", filters.ClientID)
	}
	if filters.ShiftTypeID != "" {
		add("shift_type_id =", filters.ShiftTypeID)
	}
	if filters.Status != "" {
		add("status =", string(filters.Status))
	}
	if !filters.From.IsZero() {
		add("start_time >=", filters.From)
	}
	if !filters.To.IsZero() {
		add("start_time <=", filters.To)
	}
	query += " ORDER BY start_time, id"

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err, "failed to query shifts")
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *shift)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "error iterating shifts")
	}
	return shifts, nil
}

// CreateShift inserts a shift record
func (d *DB) CreateShift(ctx context.Context, shift *model.Shift) error {
	if err := d.execShiftWrite(ctx, `
		INSERT INTO shift (`+shiftColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, shift); err != nil {
		return storeErr(err, "failed to insert shift %s", shift.ID)
	}
	return nil
}

// UpdateShift replaces all editable columns of a shift record
func (d *DB) UpdateShift(ctx context.Context, shift *model.Shift) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift SET
			client_id = $3, shift_type_id = $4, care_service_id = $5,
			start_time = $6, end_time = $7, status = $8,
			is_recurring = $9, recurrence_rule = $10, break_minutes = $11,
			location = $12, notes = $13, instructions = $14, is_active = $15
		WHERE id = $1 AND company_id = $2
	`, shiftArgs(shift)...)
	if err != nil {
		return storeErr(err, "failed to update shift %s", shift.ID)
	}
	if tag.RowsAffected() == 0 {
		return storeErr(pgx.ErrNoRows, "failed to update shift %s", shift.ID)
	}
	return nil
}

// DeleteShift removes a shift record entirely
func (d *DB) DeleteShift(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM shift WHERE id = $1`, id)
	if err != nil {
		return storeErr(err, "failed to delete shift %s", id)
	}
	if tag.RowsAffected() == 0 {
		return storeErr(pgx.ErrNoRows, "failed to delete shift %s", id)
	}
	return nil
}

func (d *DB) execShiftWrite(ctx context.Context, query string, shift *model.Shift) error {
	_, err := d.pool.Exec(ctx, query, shiftArgs(shift)...)
	return err
}

// shiftArgs flattens a shift into column order, with empty optional ids and
// texts stored as NULL
func shiftArgs(shift *model.Shift) []any {
	var rule *string
	if shift.Recurrence.IsRecurring() {
		r := string(shift.Recurrence.Kind())
		rule = &r
	}
	return []any{
		shift.ID,
		shift.CompanyID,
		shift.ClientID,
		nullable(shift.ShiftTypeID),
		shift.CareServiceID,
		shift.StartTime,
		shift.EndTime,
		string(shift.Status),
		shift.Recurrence.IsRecurring(),
		rule,
		shift.BreakMinutes,
		nullable(shift.Location),
		nullable(shift.Notes),
		nullable(shift.Instructions),
		shift.IsActive,
	}
}

func scanShift(row pgx.Row) (*model.Shift, error) {
	var s model.Shift
	var shiftTypeID, rule, location, notes, instructions, status *string
	var isRecurring bool
	err := row.Scan(&s.ID, &s.CompanyID, &s.ClientID, &shiftTypeID, &s.CareServiceID,
		&s.StartTime, &s.EndTime, &status, &isRecurring, &rule,
		&s.BreakMinutes, &location, &notes, &instructions, &s.IsActive)
	if err != nil {
		return nil, err
	}

	if status != nil {
		s.Status = model.ShiftStatus(*status)
	}
	if shiftTypeID != nil {
		s.ShiftTypeID = *shiftTypeID
	}
	if location != nil {
		s.Location = *location
	}
	if notes != nil {
		s.Notes = *notes
	}
	if instructions != nil {
		s.Instructions = *instructions
	}

	ruleName := ""
	if rule != nil {
		ruleName = *rule
	}
	recurrence, err := model.ParseRecurrence(isRecurring, ruleName, s.StartTime.Day())
	if err != nil {
		return nil, fmt.Errorf("shift %s has invalid recurrence columns: %w", s.ID, err)
	}
	s.Recurrence = recurrence

	return &s, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
