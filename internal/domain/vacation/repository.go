package vacation

import (
	"context"
	"time"
)

type ListFilter struct {
	EmployeeID string
	Status     Status
	Page       int
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, int, error)
	// FindOverlapping returns PENDING and APPROVED requests of the employee
	// whose inclusive date ranges touch [startDate, endDate], excluding
	// excludeID when non-empty.
	FindOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) ([]Request, error)
	// ListApprovedInRange returns the employee's APPROVED requests whose
	// date ranges touch [startDate, endDate].
	ListApprovedInRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]Request, error)
	CountPending(ctx context.Context, employeeID string) (int, error)
	Update(ctx context.Context, r Request) error
	Delete(ctx context.Context, id string) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
