package shift

import "time"

// ShiftType is a named template category (morning, evening, night, ...).
type ShiftType struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Shift is a work slot. It may exist without any assignment.
//
// StartTime and EndTime are full instants on ShiftDate's day. Shifts never
// cross midnight: EndTime must be after StartTime on the same day.
type Shift struct {
	ID          string
	ShiftDate   time.Time
	StartTime   time.Time
	EndTime     time.Time
	LocationID  string
	ShiftTypeID string
	Notes       *string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	LocationName  *string
	ShiftTypeName *string
}

// Duration returns the scheduled length of the shift.
func (s Shift) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentStatusConfirmed  AssignmentStatus = "CONFIRMED"
	AssignmentStatusCompleted  AssignmentStatus = "COMPLETED"
	AssignmentStatusDeclined   AssignmentStatus = "DECLINED"
	AssignmentStatusReassigned AssignmentStatus = "REASSIGNED"
)

// ActiveAssignmentStatuses are the statuses that still tie an employee to a
// shift's time range and therefore participate in overlap checks.
var ActiveAssignmentStatuses = []AssignmentStatus{
	AssignmentStatusAssigned,
	AssignmentStatusConfirmed,
	AssignmentStatusReassigned,
}

// Assignment links one employee to one shift. At most one active assignment
// exists per (employee, shift) pair.
type Assignment struct {
	ID         string
	EmployeeID string
	ShiftID    string
	Status     AssignmentStatus
	ClockIn    *time.Time
	ClockOut   *time.Time
	AssignedBy string
	AssignedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive reports whether the assignment still occupies its shift's time
// range.
func (a Assignment) IsActive() bool {
	switch a.Status {
	case AssignmentStatusAssigned, AssignmentStatusConfirmed, AssignmentStatusReassigned:
		return true
	}
	return false
}

// AssignmentWithShift carries an assignment together with its shift's time
// range, as returned by the overlap and statistics queries.
type AssignmentWithShift struct {
	Assignment
	Shift Shift
}
