package leave

import "errors"

var (
	ErrRequestNotFound         = errors.New("leave request not found")
	ErrAlreadyProcessed        = errors.New("leave request already processed")
	ErrNotRequestOwner         = errors.New("leave request belongs to another employee")
	ErrNotRequestManager       = errors.New("leave request is assigned to another manager")
	ErrFounderDecisionRequired = errors.New("escalated leave requests need a founder decision")
)
