package location

import (
	"context"
)

type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (Location, error)
	Get(ctx context.Context, id string) (Location, error)
	List(ctx context.Context) ([]Location, error)
}
