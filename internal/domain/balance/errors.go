package balance

import "errors"

var (
	ErrRecordNotFound = errors.New("balance record not found")
	ErrUnknownField   = errors.New("unknown balance field")
)
