package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid employee number or password")
	ErrEmployeeInactive   = errors.New("employee is terminated")
)
