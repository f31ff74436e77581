package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepositoryImpl{db: db}
}

const shiftSelect = `
	SELECT s.id, s.shift_date, s.start_time, s.end_time, s.location_id, s.shift_type_id, s.notes,
		s.created_by, s.created_at, s.updated_at, l.name, st.name
	FROM shifts s
	INNER JOIN locations l ON s.location_id = l.id
	INNER JOIN shift_types st ON s.shift_type_id = st.id
`

func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s.ID = uuid.New().String()
	query := `
		INSERT INTO shifts (id, shift_date, start_time, end_time, location_id, shift_type_id, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		s.ID, s.ShiftDate, s.StartTime, s.EndTime, s.LocationID, s.ShiftTypeID, s.Notes, s.CreatedBy,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, err
	}
	return s, nil
}

func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := shiftSelect + ` WHERE s.id = $1`
	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, err
	}
	return s, nil
}

func (r *shiftRepositoryImpl) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := shiftSelect + ` WHERE s.shift_date >= $1 AND s.shift_date <= $2 ORDER BY s.start_time`
	rows, err := q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectShifts(rows)
}

func (r *shiftRepositoryImpl) ListByLocation(ctx context.Context, locationID string, startDate, endDate time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := shiftSelect + ` WHERE s.location_id = $1 AND s.shift_date >= $2 AND s.shift_date <= $3 ORDER BY s.start_time`
	rows, err := q.Query(ctx, query, locationID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectShifts(rows)
}

func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts SET
			shift_date = $2, start_time = $3, end_time = $4,
			location_id = $5, shift_type_id = $6, notes = $7,
			updated_at = NOW()
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query,
		s.ID, s.ShiftDate, s.StartTime, s.EndTime, s.LocationID, s.ShiftTypeID, s.Notes,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID,
		&s.ShiftDate,
		&s.StartTime,
		&s.EndTime,
		&s.LocationID,
		&s.ShiftTypeID,
		&s.Notes,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.LocationName,
		&s.ShiftTypeName,
	)
	return s, err
}

func collectShifts(rows pgx.Rows) ([]shift.Shift, error) {
	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shifts: %w", err)
	}
	return shifts, nil
}
