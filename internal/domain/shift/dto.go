package shift

import (
	"time"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	ShiftDate   string  `json:"shift_date"`
	StartTime   string  `json:"start_time"` // RFC3339
	EndTime     string  `json:"end_time"`   // RFC3339
	LocationID  string  `json:"location_id"`
	ShiftTypeID string  `json:"shift_type_id"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.ShiftDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_date",
			Message: "shift_date must be YYYY-MM-DD",
		})
	}

	start, okStart := validator.IsValidDateTime(r.StartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be an ISO8601 timestamp",
		})
	}
	end, okEnd := validator.IsValidDateTime(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be an ISO8601 timestamp",
		})
	}

	// Shifts must not cross midnight: both instants on the shift date, end
	// strictly after start.
	if okStart && okEnd {
		if !end.After(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			})
		} else if !validator.TruncateToDay(start).Equal(validator.TruncateToDay(end)) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "shift must start and end on the same day",
			})
		}
	}

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}
	if validator.IsEmpty(r.ShiftTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type_id",
			Message: "shift_type_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	LocationID  *string `json:"location_id,omitempty"`
	ShiftTypeID *string `json:"shift_type_id,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartTime != nil {
		if _, ok := validator.IsValidDateTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be an ISO8601 timestamp",
			})
		}
	}
	if r.EndTime != nil {
		if _, ok := validator.IsValidDateTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *AssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReassignRequest struct {
	NewShiftID string `json:"new_shift_id"`
}

func (r *ReassignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.NewShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_shift_id",
			Message: "new_shift_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeclineRequest struct {
	Reason string `json:"reason"`
}

type CreateShiftTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateShiftTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID            string    `json:"id"`
	ShiftDate     time.Time `json:"shift_date"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	LocationID    string    `json:"location_id"`
	LocationName  *string   `json:"location_name,omitempty"`
	ShiftTypeID   string    `json:"shift_type_id"`
	ShiftTypeName *string   `json:"shift_type_name,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

func ToShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:            s.ID,
		ShiftDate:     s.ShiftDate,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		LocationID:    s.LocationID,
		LocationName:  s.LocationName,
		ShiftTypeID:   s.ShiftTypeID,
		ShiftTypeName: s.ShiftTypeName,
		Notes:         s.Notes,
	}
}

type AssignmentResponse struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employee_id"`
	ShiftID    string           `json:"shift_id"`
	Status     AssignmentStatus `json:"status"`
	ClockIn    *time.Time       `json:"clock_in,omitempty"`
	ClockOut   *time.Time       `json:"clock_out,omitempty"`
	AssignedBy string           `json:"assigned_by"`
	AssignedAt time.Time        `json:"assigned_at"`
}

func ToAssignmentResponse(a Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ShiftID:    a.ShiftID,
		Status:     a.Status,
		ClockIn:    a.ClockIn,
		ClockOut:   a.ClockOut,
		AssignedBy: a.AssignedBy,
		AssignedAt: a.AssignedAt,
	}
}
