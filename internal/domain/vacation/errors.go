package vacation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRequestNotFound      = errors.New("vacation request not found")
	ErrRequestNotPending    = errors.New("vacation request already processed")
	ErrRequestNotCancelable = errors.New("vacation request can no longer be cancelled")
	ErrOverlappingVacation  = errors.New("date range overlaps another vacation request")
	ErrOverlappingShift     = errors.New("date range overlaps an active shift assignment")
	ErrNotEmployeesManager  = errors.New("reviewer is not the employee's manager")
	ErrNotRequestOwner      = errors.New("vacation request belongs to another employee")
	ErrStartDateInPast      = errors.New("start_date must not be in the past")
)

// ConflictError carries the blocking entity's id and range so the caller can
// render an actionable message.
type ConflictError struct {
	ConflictingID string
	StartDate     time.Time
	EndDate       time.Time
	sentinel      error
}

func NewVacationConflict(id string, start, end time.Time) *ConflictError {
	return &ConflictError{ConflictingID: id, StartDate: start, EndDate: end, sentinel: ErrOverlappingVacation}
}

func NewShiftConflict(id string, start, end time.Time) *ConflictError {
	return &ConflictError{ConflictingID: id, StartDate: start, EndDate: end, sentinel: ErrOverlappingShift}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s (%s - %s)", e.sentinel, e.ConflictingID,
		e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02"))
}

func (e *ConflictError) Unwrap() error {
	return e.sentinel
}
