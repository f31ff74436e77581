package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
)

type shiftTypeRepositoryImpl struct {
	db *database.DB
}

func NewShiftTypeRepository(db *database.DB) shift.TypeRepository {
	return &shiftTypeRepositoryImpl{db: db}
}

func (r *shiftTypeRepositoryImpl) Create(ctx context.Context, t shift.ShiftType) (shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	t.ID = uuid.New().String()
	query := `
		INSERT INTO shift_types (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, t.ID, t.Name, t.Description).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return shift.ShiftType{}, err
	}
	return t, nil
}

func (r *shiftTypeRepositoryImpl) GetByID(ctx context.Context, id string) (shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	var t shift.ShiftType
	query := `SELECT id, name, description, created_at, updated_at FROM shift_types WHERE id = $1`
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftType{}, shift.ErrShiftTypeNotFound
		}
		return shift.ShiftType{}, err
	}
	return t, nil
}

func (r *shiftTypeRepositoryImpl) List(ctx context.Context) ([]shift.ShiftType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM shift_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []shift.ShiftType
	for rows.Next() {
		var t shift.ShiftType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
