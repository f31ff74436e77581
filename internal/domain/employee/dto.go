package employee

import (
	"time"

	"github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeNumber  string  `json:"employee_number"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	HomeLocationID  *string `json:"home_location_id,omitempty"`
	HireDate        string  `json:"hire_date"`
	Department      string  `json:"department"`
	Position        string  `json:"position"`
	ManagerID       *string `json:"manager_id,omitempty"`
	FullTime        bool    `json:"full_time"`
	MaxHoursPerWeek int     `json:"max_hours_per_week"`
	Role            string  `json:"role"`
	ManagementLevel *int    `json:"management_level,omitempty"`
	Password        string  `json:"password"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeNumber(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number must match EMP-<digits>",
		})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid address",
		})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be YYYY-MM-DD",
		})
	}
	if !validator.IsInSlice(r.Role, RoleValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be employee or manager",
		})
	}
	if r.MaxHoursPerWeek <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours_per_week",
			Message: "max_hours_per_week must be positive",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	HomeLocationID  *string `json:"home_location_id,omitempty"`
	Department      *string `json:"department,omitempty"`
	Position        *string `json:"position,omitempty"`
	ManagerID       *string `json:"manager_id,omitempty"`
	FullTime        *bool   `json:"full_time,omitempty"`
	MaxHoursPerWeek *int    `json:"max_hours_per_week,omitempty"`
	TerminationDate *string `json:"termination_date,omitempty"` // YYYY-MM-DD
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid address",
		})
	}
	if r.TerminationDate != nil {
		if _, ok := validator.IsValidDate(*r.TerminationDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "termination_date",
				Message: "termination_date must be YYYY-MM-DD",
			})
		}
	}
	if r.MaxHoursPerWeek != nil && *r.MaxHoursPerWeek <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_hours_per_week",
			Message: "max_hours_per_week must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID              string     `json:"id"`
	EmployeeNumber  string     `json:"employee_number"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           *string    `json:"email,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	HomeLocationID  *string    `json:"home_location_id,omitempty"`
	HireDate        time.Time  `json:"hire_date"`
	TerminationDate *time.Time `json:"termination_date,omitempty"`
	Department      string     `json:"department"`
	Position        string     `json:"position"`
	ManagerID       *string    `json:"manager_id,omitempty"`
	FullTime        bool       `json:"full_time"`
	MaxHoursPerWeek int        `json:"max_hours_per_week"`
	Role            Role       `json:"role"`
	ManagementLevel *int       `json:"management_level,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		EmployeeNumber:  e.EmployeeNumber,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Email:           e.Email,
		Phone:           e.Phone,
		HomeLocationID:  e.HomeLocationID,
		HireDate:        e.HireDate,
		TerminationDate: e.TerminationDate,
		Department:      e.Department,
		Position:        e.Position,
		ManagerID:       e.ManagerID,
		FullTime:        e.FullTime,
		MaxHoursPerWeek: e.MaxHoursPerWeek,
		Role:            e.Role,
		ManagementLevel: e.ManagementLevel,
	}
}
