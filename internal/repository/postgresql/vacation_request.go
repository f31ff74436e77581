package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/vacation"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
)

type vacationRequestRepositoryImpl struct {
	db *database.DB
}

func NewVacationRequestRepository(db *database.DB) vacation.Repository {
	return &vacationRequestRepositoryImpl{db: db}
}

const vacationRequestSelect = `
	SELECT v.id, v.employee_id, v.start_date, v.end_date, v.status, v.request_notes,
		v.reviewer_id, v.review_notes, v.reviewed_at, v.created_at, v.updated_at,
		e.first_name || ' ' || e.last_name
	FROM vacation_requests v
	INNER JOIN employees e ON v.employee_id = e.id
`

func (r *vacationRequestRepositoryImpl) Create(ctx context.Context, req vacation.Request) (vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	req.ID = uuid.New().String()
	query := `
		INSERT INTO vacation_requests (id, employee_id, start_date, end_date, status, request_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.StartDate, req.EndDate, req.Status, req.RequestNotes,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return vacation.Request{}, err
	}
	return req, nil
}

func (r *vacationRequestRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := vacationRequestSelect + ` WHERE v.id = $1`
	req, err := scanVacationRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.Request{}, vacation.ErrRequestNotFound
		}
		return vacation.Request{}, err
	}
	return req, nil
}

func (r *vacationRequestRepositoryImpl) List(ctx context.Context, filter vacation.ListFilter) ([]vacation.Request, int, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("v.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("v.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM vacation_requests v WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := vacationRequestSelect + ` WHERE ` + where + ` ORDER BY v.created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests, err := collectVacationRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *vacationRequestRepositoryImpl) FindOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) ([]vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	// Inclusive-day overlap: two ranges conflict when they share a day.
	query := vacationRequestSelect + `
		WHERE v.employee_id = $1
			AND v.status IN ('PENDING', 'APPROVED')
			AND v.start_date <= $3 AND v.end_date >= $2
			AND ($4 = '' OR v.id <> $4)
		ORDER BY v.start_date
	`
	rows, err := q.Query(ctx, query, employeeID, startDate, endDate, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVacationRequests(rows)
}

func (r *vacationRequestRepositoryImpl) ListApprovedInRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := vacationRequestSelect + `
		WHERE v.employee_id = $1
			AND v.status = 'APPROVED'
			AND v.start_date <= $3 AND v.end_date >= $2
		ORDER BY v.start_date
	`
	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectVacationRequests(rows)
}

func (r *vacationRequestRepositoryImpl) CountPending(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM vacation_requests WHERE employee_id = $1 AND status = 'PENDING'`
	if err := q.QueryRow(ctx, query, employeeID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *vacationRequestRepositoryImpl) Update(ctx context.Context, req vacation.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vacation_requests SET
			start_date = $2, end_date = $3, status = $4, request_notes = $5,
			reviewer_id = $6, review_notes = $7, reviewed_at = $8,
			updated_at = NOW()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query,
		req.ID, req.StartDate, req.EndDate, req.Status, req.RequestNotes,
		req.ReviewerID, req.ReviewNotes, req.ReviewedAt,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return vacation.ErrRequestNotFound
	}
	return nil
}

func (r *vacationRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM vacation_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return vacation.ErrRequestNotFound
	}
	return nil
}

func (r *vacationRequestRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM vacation_requests WHERE employee_id = $1`, employeeID)
	return err
}

func scanVacationRequest(row pgx.Row) (vacation.Request, error) {
	var req vacation.Request
	err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.StartDate,
		&req.EndDate,
		&req.Status,
		&req.RequestNotes,
		&req.ReviewerID,
		&req.ReviewNotes,
		&req.ReviewedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.EmployeeName,
	)
	return req, err
}

func collectVacationRequests(rows pgx.Rows) ([]vacation.Request, error) {
	var requests []vacation.Request
	for rows.Next() {
		req, err := scanVacationRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
