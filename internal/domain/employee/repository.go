package employee

import "context"

type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeNumber(ctx context.Context, number string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListManagedBy(ctx context.Context, managerID string) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	// Delete removes the employee row only. Cascade deletion of owned
	// vacation requests, notifications and assignments is the service's
	// responsibility.
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Department *string
	Role       *string
	Active     *bool
	Page       int
	Limit      int
}
