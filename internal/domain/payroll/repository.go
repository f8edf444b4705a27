package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type SalaryConfigRepository interface {
	GetActiveByEmployee(ctx context.Context, employeeID string) (SalaryConfig, error)
	ListActive(ctx context.Context) ([]SalaryConfig, error)
}

type PayslipRepository interface {
	// InsertIfAbsent writes the payslip unless one already exists for
	// (employee, month, year). The bool reports whether a row was written.
	InsertIfAbsent(ctx context.Context, payslip Payslip) (bool, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Payslip, error)
}

type BonusLedgerRepository interface {
	// InsertEntryIfAbsent appends the period entry unless one already exists
	// for (employee, month, year).
	InsertEntryIfAbsent(ctx context.Context, entry BonusEntry) (bool, error)
	// AddToTotal bumps the cumulative ledger, creating it at zero first if
	// the employee has none.
	AddToTotal(ctx context.Context, employeeID string, amount decimal.Decimal) error
	GetLedger(ctx context.Context, employeeID string) (BonusLedger, error)
	ListEntries(ctx context.Context, employeeID string) ([]BonusEntry, error)
}
