package location

import "context"

type Repository interface {
	Create(ctx context.Context, loc Location) (Location, error)
	GetByID(ctx context.Context, id string) (Location, error)
	List(ctx context.Context) ([]Location, error)
}
