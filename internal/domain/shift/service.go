package shift

import (
	"context"
	"time"
)

type Service interface {
	// Shift slots
	CreateShift(ctx context.Context, creatorID string, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	ListShifts(ctx context.Context, startDate, endDate time.Time, locationID string) ([]ShiftResponse, error)
	UpdateShift(ctx context.Context, id string, actorID string, req UpdateShiftRequest) (ShiftResponse, error)
	// DeleteShift removes the shift and its assignments, notifying every
	// actively assigned employee.
	DeleteShift(ctx context.Context, id string) error

	// Assignments
	Assign(ctx context.Context, shiftID string, assignerID string, req AssignRequest) (AssignmentResponse, error)
	Unassign(ctx context.Context, assignmentID string, actorID string) error
	Reassign(ctx context.Context, assignmentID string, actorID string, req ReassignRequest) (AssignmentResponse, error)
	Confirm(ctx context.Context, assignmentID string, employeeID string) (AssignmentResponse, error)
	Decline(ctx context.Context, assignmentID string, employeeID string, req DeclineRequest) (AssignmentResponse, error)
	ClockIn(ctx context.Context, assignmentID string, employeeID string) (AssignmentResponse, error)
	ClockOut(ctx context.Context, assignmentID string, employeeID string) (AssignmentResponse, error)
	ListEmployeeAssignments(ctx context.Context, employeeID string, from, to time.Time) ([]AssignmentResponse, error)

	// Shift types
	CreateShiftType(ctx context.Context, req CreateShiftTypeRequest) (ShiftType, error)
	ListShiftTypes(ctx context.Context) ([]ShiftType, error)
}
