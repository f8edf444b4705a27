package payroll

import "errors"

var (
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrSalaryConfigNotFound = errors.New("salary config not found")
	ErrNotPayslipOwner      = errors.New("payslip belongs to another employee")
)
