package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryConfig is the standing pay agreement for one employee.
type SalaryConfig struct {
	ID           string
	EmployeeID   string
	BaseSalary   decimal.Decimal
	TaxDeduction decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payslip is the immutable settlement of one employee for one period.
// (employee_id, month, year) is the idempotency key: a period is settled
// at most once no matter how often finalization runs. Month is 0-11.
type Payslip struct {
	ID                 string
	EmployeeID         string
	Month              int
	Year               int
	BaseSalary         decimal.Decimal
	TaxDeduction       decimal.Decimal
	CasualDays         float64
	SickDays           float64
	HalfDayCount       int
	UnpaidCasualDays   float64
	UnpaidSickDays     float64
	LateDays           float64
	PerDayRate         decimal.Decimal
	LeaveDeduction     decimal.Decimal
	LateDeduction      decimal.Decimal
	ReimbursementTotal decimal.Decimal
	NetSalary          decimal.Decimal
	GeneratedAt        time.Time
}

// BonusLedger is the running retention bonus total for one employee.
type BonusLedger struct {
	EmployeeID string
	Total      decimal.Decimal
	UpdatedAt  time.Time
}

// BonusEntry is the append-only record of one period's retention decision.
// An entry is written whether or not a bonus was earned.
type BonusEntry struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int
	Score      float64
	Eligible   bool
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
