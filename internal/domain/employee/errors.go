package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrManagerNotFound      = errors.New("manager not found")
	ErrEmployeeNumberExists = errors.New("employee number already exists")
	ErrNotAManager          = errors.New("employee is not a manager")
)
