package response

import (
	"errors"
	"net/http"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/auth"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/employee"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/location"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/notification"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/shift"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/domain/vacation"
	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid employee number or password")
	case errors.Is(err, auth.ErrEmployeeInactive):
		Forbidden(w, "Employee is terminated")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Manager not found")
	case errors.Is(err, employee.ErrEmployeeNumberExists):
		Conflict(w, "Employee number already exists")
	case errors.Is(err, employee.ErrNotAManager):
		BadRequest(w, "Referenced employee is not a manager", nil)

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftTypeNotFound):
		NotFound(w, "Shift type not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrAlreadyAssigned):
		Conflict(w, "Employee is already assigned to this shift")
	case errors.Is(err, shift.ErrOverlappingAssignment):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrInvalidAssignmentState):
		Conflict(w, "Operation not allowed in current assignment status")
	case errors.Is(err, shift.ErrClockOutBeforeClockIn):
		BadRequest(w, "Clock-out time precedes clock-in time", nil)
	case errors.Is(err, shift.ErrNotClockedIn):
		BadRequest(w, "Assignment has no clock-in time", nil)

	// Vacation domain errors
	case errors.Is(err, vacation.ErrRequestNotFound):
		NotFound(w, "Vacation request not found")
	case errors.Is(err, vacation.ErrRequestNotPending):
		Conflict(w, "Vacation request already processed")
	case errors.Is(err, vacation.ErrRequestNotCancelable):
		Conflict(w, "Vacation request can no longer be cancelled")
	case errors.Is(err, vacation.ErrOverlappingVacation),
		errors.Is(err, vacation.ErrOverlappingShift):
		Conflict(w, err.Error())
	case errors.Is(err, vacation.ErrNotEmployeesManager):
		Forbidden(w, "Reviewer is not the employee's manager")
	case errors.Is(err, vacation.ErrNotRequestOwner):
		Forbidden(w, "Vacation request belongs to another employee")
	case errors.Is(err, vacation.ErrStartDateInPast):
		BadRequest(w, "start_date must not be in the past", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Notification belongs to another employee")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
