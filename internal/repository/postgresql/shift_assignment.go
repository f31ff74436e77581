package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
)

type shiftAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepositoryImpl{db: db}
}

const assignmentColumns = `id, employee_id, shift_id, status, clock_in, clock_out, assigned_by, assigned_at, created_at, updated_at`

// activeStatuses matches shift.ActiveAssignmentStatuses.
const activeStatuses = `('ASSIGNED', 'CONFIRMED', 'REASSIGNED')`

func (r *shiftAssignmentRepositoryImpl) Create(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	a.ID = uuid.New().String()
	query := `
		INSERT INTO shift_assignments (id, employee_id, shift_id, status, clock_in, clock_out, assigned_by, assigned_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.ShiftID, a.Status, a.ClockIn, a.ClockOut, a.AssignedBy, a.AssignedAt,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return shift.Assignment{}, err
	}
	return a, nil
}

func (r *shiftAssignmentRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + assignmentColumns + ` FROM shift_assignments WHERE id = $1`
	a, err := scanAssignment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, err
	}
	return a, nil
}

func (r *shiftAssignmentRepositoryImpl) GetActiveByEmployeeAndShift(ctx context.Context, employeeID, shiftID string) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments
		WHERE employee_id = $1 AND shift_id = $2 AND status IN ` + activeStatuses + `
	`
	a, err := scanAssignment(q.QueryRow(ctx, query, employeeID, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, err
	}
	return a, nil
}

func (r *shiftAssignmentRepositoryImpl) ListActiveForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]shift.AssignmentWithShift, error) {
	q := GetQuerier(ctx, r.db)

	// Half-open window: a shift ending exactly at `from` is excluded.
	query := assignmentWithShiftSelect + `
		WHERE a.employee_id = $1 AND a.status IN ` + activeStatuses + `
			AND s.start_time < $3 AND s.end_time > $2
		ORDER BY s.start_time
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAssignmentsWithShift(rows)
}

func (r *shiftAssignmentRepositoryImpl) ListActiveForShift(ctx context.Context, shiftID string) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments
		WHERE shift_id = $1 AND status IN ` + activeStatuses + `
		ORDER BY assigned_at
	`
	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *shiftAssignmentRepositoryImpl) ListCompletedForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]shift.AssignmentWithShift, error) {
	q := GetQuerier(ctx, r.db)

	query := assignmentWithShiftSelect + `
		WHERE a.employee_id = $1 AND a.status = 'COMPLETED'
			AND s.shift_date >= $2 AND s.shift_date < $3
		ORDER BY s.shift_date
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAssignmentsWithShift(rows)
}

func (r *shiftAssignmentRepositoryImpl) Update(ctx context.Context, a shift.Assignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_assignments SET
			shift_id = $2, status = $3, clock_in = $4, clock_out = $5, assigned_at = $6,
			updated_at = NOW()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, a.ID, a.ShiftID, a.Status, a.ClockIn, a.ClockOut, a.AssignedAt)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

func (r *shiftAssignmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

func (r *shiftAssignmentRepositoryImpl) DeleteByShift(ctx context.Context, shiftID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE shift_id = $1`, shiftID)
	return err
}

func (r *shiftAssignmentRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE employee_id = $1`, employeeID)
	return err
}

const assignmentWithShiftSelect = `
	SELECT a.id, a.employee_id, a.shift_id, a.status, a.clock_in, a.clock_out, a.assigned_by, a.assigned_at, a.created_at, a.updated_at,
		s.id, s.shift_date, s.start_time, s.end_time, s.location_id, s.shift_type_id, s.notes, s.created_by, s.created_at, s.updated_at
	FROM shift_assignments a
	INNER JOIN shifts s ON a.shift_id = s.id
`

func scanAssignment(row pgx.Row) (shift.Assignment, error) {
	var a shift.Assignment
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.ShiftID,
		&a.Status,
		&a.ClockIn,
		&a.ClockOut,
		&a.AssignedBy,
		&a.AssignedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func collectAssignmentsWithShift(rows pgx.Rows) ([]shift.AssignmentWithShift, error) {
	var assignments []shift.AssignmentWithShift
	for rows.Next() {
		var a shift.AssignmentWithShift
		err := rows.Scan(
			&a.ID,
			&a.EmployeeID,
			&a.ShiftID,
			&a.Status,
			&a.ClockIn,
			&a.ClockOut,
			&a.AssignedBy,
			&a.AssignedAt,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.Shift.ID,
			&a.Shift.ShiftDate,
			&a.Shift.StartTime,
			&a.Shift.EndTime,
			&a.Shift.LocationID,
			&a.Shift.ShiftTypeID,
			&a.Shift.Notes,
			&a.Shift.CreatedBy,
			&a.Shift.CreatedAt,
			&a.Shift.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
