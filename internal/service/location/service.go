package location

import (
	"context"
	"fmt"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/location"
)

type ServiceImpl struct {
	location.Repository
}

func NewService(repo location.Repository) location.Service {
	return &ServiceImpl{Repository: repo}
}

// Create implements location.Service.
func (s *ServiceImpl) Create(ctx context.Context, req location.CreateLocationRequest) (location.Location, error) {
	if err := req.Validate(); err != nil {
		return location.Location{}, err
	}
	created, err := s.Repository.Create(ctx, location.Location{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}
	return created, nil
}

// Get implements location.Service.
func (s *ServiceImpl) Get(ctx context.Context, id string) (location.Location, error) {
	loc, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to get location: %w", err)
	}
	return loc, nil
}

// List implements location.Service.
func (s *ServiceImpl) List(ctx context.Context) ([]location.Location, error) {
	locations, err := s.Repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}
