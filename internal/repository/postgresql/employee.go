package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_number, first_name, last_name, email, phone, home_location_id,
	hire_date, termination_date, department, position, manager_id, full_time, max_hours_per_week,
	role, management_level, password_hash, created_at, updated_at`

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e.ID = uuid.New().String()
	query := `
		INSERT INTO employees (
			id, employee_number, first_name, last_name, email, phone, home_location_id,
			hire_date, termination_date, department, position, manager_id, full_time, max_hours_per_week,
			role, management_level, password_hash, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		e.ID, e.EmployeeNumber, e.FirstName, e.LastName, e.Email, e.Phone, e.HomeLocationID,
		e.HireDate, e.TerminationDate, e.Department, e.Position, e.ManagerID, e.FullTime, e.MaxHoursPerWeek,
		e.Role, e.ManagementLevel, e.PasswordHash,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)
	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByEmployeeNumber(ctx context.Context, employeeNumber string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE employee_number = $1`, employeeColumns)
	e, err := scanEmployee(q.QueryRow(ctx, query, employeeNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argPos))
		args = append(args, *filter.Department)
		argPos++
	}
	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argPos))
		args = append(args, *filter.Role)
		argPos++
	}
	if filter.Active != nil && *filter.Active {
		conditions = append(conditions, "termination_date IS NULL")
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY employee_number`, employeeColumns, where)
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

	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepositoryImpl) ListManagedBy(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE manager_id = $1 ORDER BY employee_number`, employeeColumns)
	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			first_name = $2, last_name = $3, email = $4, phone = $5, home_location_id = $6,
			termination_date = $7, department = $8, position = $9, manager_id = $10,
			full_time = $11, max_hours_per_week = $12, management_level = $13,
			updated_at = NOW()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.HomeLocationID,
		e.TerminationDate, e.Department, e.Position, e.ManagerID,
		e.FullTime, e.MaxHoursPerWeek, e.ManagementLevel,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.EmployeeNumber,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Phone,
		&e.HomeLocationID,
		&e.HireDate,
		&e.TerminationDate,
		&e.Department,
		&e.Position,
		&e.ManagerID,
		&e.FullTime,
		&e.MaxHoursPerWeek,
		&e.Role,
		&e.ManagementLevel,
		&e.PasswordHash,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
