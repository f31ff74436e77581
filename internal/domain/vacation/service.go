package vacation

import (
	"context"
)

type Service interface {
	Create(ctx context.Context, employeeID string, req CreateRequest) (RequestResponse, error)
	Update(ctx context.Context, id string, actorID string, req UpdateRequest) (RequestResponse, error)
	Get(ctx context.Context, id string) (RequestResponse, error)
	List(ctx context.Context, filter ListFilter) ([]RequestResponse, int, error)
	Approve(ctx context.Context, id string, reviewerID string, req ReviewRequest) (RequestResponse, error)
	Reject(ctx context.Context, id string, reviewerID string, req ReviewRequest) (RequestResponse, error)
	Cancel(ctx context.Context, id string, actorID string) (RequestResponse, error)
	Delete(ctx context.Context, id string) error
}
