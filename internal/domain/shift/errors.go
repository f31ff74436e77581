package shift

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrShiftNotFound          = errors.New("shift not found")
	ErrShiftTypeNotFound      = errors.New("shift type not found")
	ErrAssignmentNotFound     = errors.New("shift assignment not found")
	ErrAlreadyAssigned        = errors.New("employee already has an active assignment for this shift")
	ErrOverlappingAssignment  = errors.New("shift overlaps another active assignment")
	ErrInvalidAssignmentState = errors.New("operation not allowed in current assignment status")
	ErrClockOutBeforeClockIn  = errors.New("clock-out time precedes clock-in time")
	ErrNotClockedIn           = errors.New("assignment has no clock-in time")
)

// ConflictError reports which assignment blocked an assign/reassign, with
// the blocking shift's time range so callers can render it.
type ConflictError struct {
	AssignmentID string
	ShiftID      string
	StartTime    time.Time
	EndTime      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shift overlaps active assignment %s on shift %s (%s - %s)",
		e.AssignmentID, e.ShiftID,
		e.StartTime.Format("2006-01-02 15:04"), e.EndTime.Format("15:04"))
}

func (e *ConflictError) Unwrap() error {
	return ErrOverlappingAssignment
}
