package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrNoAssignedManager = errors.New("employee has no assigned manager")
	ErrEmployeeInactive  = errors.New("employee is inactive")
)
