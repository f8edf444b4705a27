package reimbursement

import "errors"

var (
	ErrClaimNotFound    = errors.New("reimbursement claim not found")
	ErrAlreadyProcessed = errors.New("reimbursement claim already processed")
	ErrNotClaimOwner    = errors.New("reimbursement claim belongs to another employee")
)
