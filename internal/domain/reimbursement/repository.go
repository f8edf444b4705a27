package reimbursement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Transition is a guarded status change, applied only while the claim is
// still in From.
type Transition struct {
	ID      string
	From    Status
	To      Status
	ActorID string
	Reason  string
	At      time.Time
}

type Repository interface {
	Create(ctx context.Context, claim Claim) (Claim, error)
	GetByID(ctx context.Context, id string) (Claim, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Claim, error)
	ListByStatus(ctx context.Context, status Status) ([]Claim, error)
	Transition(ctx context.Context, t Transition) error
	// SumApprovedInPeriod totals approved claims whose payment date falls
	// inside a payroll period.
	SumApprovedInPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (decimal.Decimal, error)
}
