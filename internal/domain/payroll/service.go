package payroll

import (
	"context"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
)

type Service interface {
	// Compute builds the review sheet for a period. Employees already
	// settled for the period, or without an active salary config, are
	// skipped.
	Compute(ctx context.Context, period Period) ([]Row, error)
	// Finalize settles the (possibly operator-edited) rows: per employee it
	// writes the payslip, resets the monthly ledger counters and appends
	// the retention bonus entry, atomically. Safe to re-run.
	Finalize(ctx context.Context, req FinalizeRequest) (FinalizeResult, error)
	MyPayslips(ctx context.Context, actor employee.Actor) ([]Payslip, error)
	PayslipPDF(ctx context.Context, actor employee.Actor, payslipID string) ([]byte, string, error)
	MyBonus(ctx context.Context, actor employee.Actor) (BonusLedger, []BonusEntry, error)
}
