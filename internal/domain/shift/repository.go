package shift

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]Shift, error)
	ListByLocation(ctx context.Context, locationID string, startDate, endDate time.Time) ([]Shift, error)
	Update(ctx context.Context, s Shift) error
	// Delete removes the shift row only; the service deletes assignments
	// first (explicit cascade).
	Delete(ctx context.Context, id string) error
}

type TypeRepository interface {
	Create(ctx context.Context, t ShiftType) (ShiftType, error)
	GetByID(ctx context.Context, id string) (ShiftType, error)
	List(ctx context.Context) ([]ShiftType, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string) (Assignment, error)
	// GetActiveByEmployeeAndShift returns the single active assignment for
	// the pair, or ErrAssignmentNotFound.
	GetActiveByEmployeeAndShift(ctx context.Context, employeeID, shiftID string) (Assignment, error)
	// ListActiveForEmployee returns the employee's active assignments whose
	// shift ranges intersect [from, to), joined with their shifts.
	ListActiveForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]AssignmentWithShift, error)
	// ListActiveForShift returns every active assignment on a shift.
	ListActiveForShift(ctx context.Context, shiftID string) ([]Assignment, error)
	// ListCompletedForEmployee returns COMPLETED assignments whose shift
	// date falls inside [from, to], joined with their shifts.
	ListCompletedForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]AssignmentWithShift, error)
	Update(ctx context.Context, a Assignment) error
	Delete(ctx context.Context, id string) error
	DeleteByShift(ctx context.Context, shiftID string) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
