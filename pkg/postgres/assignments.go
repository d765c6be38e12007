package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/careops/careshift/pkg/core/model"
	"github.com/careops/careshift/pkg/db"
)

const assignmentColumns = `id, shift_id, staff_id, assignment_status, assigned_at,
	notes, start_time, end_time`

// GetAssignment retrieves an assignment by id
func (d *DB) GetAssignment(ctx context.Context, id string) (*model.ShiftStaffAssignment, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM shift_staff_assignment WHERE id = $1`, id)
	assignment, err := scanAssignment(row)
	if err != nil {
		return nil, storeErr(err, "failed to fetch assignment %s", id)
	}
	return assignment, nil
}

// ListAssignmentsByShift retrieves every assignment for a shift, oldest first
func (d *DB) ListAssignmentsByShift(ctx context.Context, shiftID string) ([]model.ShiftStaffAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM shift_staff_assignment
		WHERE shift_id = $1
		ORDER BY assigned_at, id
	`, shiftID)
	if err != nil {
		return nil, storeErr(err, "failed to query assignments for shift %s", shiftID)
	}
	defer rows.Close()

	var assignments []model.ShiftStaffAssignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err, "error iterating assignments")
	}
	return assignments, nil
}

// ApplyAssignmentMutation runs every part of the mutation in one transaction
// so an assignment change and its shift-status consequence commit together
func (d *DB) ApplyAssignmentMutation(ctx context.Context, m db.AssignmentMutation) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return storeErr(err, "failed to begin assignment transaction")
	}
	defer tx.Rollback(ctx)

	for _, a := range m.Update {
		tag, err := tx.Exec(ctx, `
			UPDATE shift_staff_assignment
			SET assignment_status = $2, notes = $3, start_time = $4, end_time = $5
			WHERE id = $1
		`, a.ID, string(a.Status), nullable(a.Notes), a.StartTime, a.EndTime)
		if err != nil {
			return storeErr(err, "failed to update assignment %s", a.ID)
		}
		if tag.RowsAffected() == 0 {
			return storeErr(pgx.ErrNoRows, "failed to update assignment %s", a.ID)
		}
	}

	for _, id := range m.Delete {
		tag, err := tx.Exec(ctx, `DELETE FROM shift_staff_assignment WHERE id = $1`, id)
		if err != nil {
			return storeErr(err, "failed to delete assignment %s", id)
		}
		if tag.RowsAffected() == 0 {
			return storeErr(pgx.ErrNoRows, "failed to delete assignment %s", id)
		}
	}

	if m.Create != nil {
		a := m.Create
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_staff_assignment (`+assignmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.ShiftID, a.StaffID, string(a.Status), a.AssignedAt,
			nullable(a.Notes), a.StartTime, a.EndTime)
		if err != nil {
			return storeErr(err, "failed to insert assignment %s", a.ID)
		}
	}

	if m.ShiftStatus != nil {
		tag, err := tx.Exec(ctx, `UPDATE shift SET status = $2 WHERE id = $1`,
			m.ShiftID, string(*m.ShiftStatus))
		if err != nil {
			return storeErr(err, "failed to update status of shift %s", m.ShiftID)
		}
		if tag.RowsAffected() == 0 {
			return storeErr(pgx.ErrNoRows, "failed to update status of shift %s", m.ShiftID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr(err, "failed to commit assignment mutation for shift %s", m.ShiftID)
	}
	return nil
}

func scanAssignment(row pgx.Row) (*model.ShiftStaffAssignment, error) {
	var a model.ShiftStaffAssignment
	var status string
	var notes *string
	err := row.Scan(&a.ID, &a.ShiftID, &a.StaffID, &status, &a.AssignedAt,
		&notes, &a.StartTime, &a.EndTime)
	if err != nil {
		return nil, err
	}
	a.Status = model.AssignmentStatus(status)
	if notes != nil {
		a.Notes = *notes
	}
	return &a, nil
}
