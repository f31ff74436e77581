package location

import "github.com/shiftmanager/shiftmanager-backend-go/internal/pkg/validator"

type CreateLocationRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

func (r *CreateLocationRequest) Validate() error {
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
