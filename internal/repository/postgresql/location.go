package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/location"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/database"
)

type locationRepositoryImpl struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.Repository {
	return &locationRepositoryImpl{db: db}
}

func (r *locationRepositoryImpl) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	loc.ID = uuid.New().String()
	query := `
		INSERT INTO locations (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, loc.ID, loc.Name, loc.Address).Scan(&loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return location.Location{}, err
	}
	return loc, nil
}

func (r *locationRepositoryImpl) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	var loc location.Location
	query := `SELECT id, name, address, created_at, updated_at FROM locations WHERE id = $1`
	err := q.QueryRow(ctx, query, id).Scan(&loc.ID, &loc.Name, &loc.Address, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, err
	}
	return loc, nil
}

func (r *locationRepositoryImpl) List(ctx context.Context) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, address, created_at, updated_at FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var loc location.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Address, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}
