package employee

import (
	"context"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error)
	ListManagedBy(ctx context.Context, managerID string) ([]EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	// Delete removes the employee together with their vacation requests,
	// notifications and shift assignments.
	Delete(ctx context.Context, id string) error
}
