package reimbursement

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

// Claim is an expense an employee wants paid back through payroll.
type Claim struct {
	ID              string
	EmployeeID      string
	PaymentDate     time.Time
	Amount          decimal.Decimal
	Reason          string
	ReceiptURL      *string
	Status          Status
	RejectionReason *string
	ProcessedBy     *string
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
