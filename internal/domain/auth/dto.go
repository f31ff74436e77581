package auth

import "github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"

type LoginRequest struct {
	EmployeeNumber string `json:"employee_number"`
	Password       string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number is required",
		})
	} else if !validator.IsValidEmployeeNumber(r.EmployeeNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_number",
			Message: "employee_number must look like EMP-0001",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
