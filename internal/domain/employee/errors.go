package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrManagerNotFound  = errors.New("reporting manager not found")
	ErrEmailExists      = errors.New("email already registered")
)
