package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrNIPExists        = errors.New("NIP already registered")
	ErrEmailExists      = errors.New("Email already registered")
)
