package payroll

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// salaryDivisorDays converts a monthly base into a per-day rate.
	salaryDivisorDays = 30
	// FreeCasualDaysPerMonth and FreeSickDaysPerMonth are the paid
	// allowances; only the excess is deducted.
	FreeCasualDaysPerMonth = 4
	FreeSickDaysPerMonth   = 2
	// retentionScoreThreshold: strictly below earns the bonus.
	retentionScoreThreshold = 2
	// retentionBonusDays is the bonus size in per-day rates.
	retentionBonusDays = 2
)

var divisor = decimal.NewFromInt(salaryDivisorDays)

// Row is one employee's payroll line for a period. Compute fills it from
// the ledgers; operators may then edit the input fields and Recompute
// re-derives everything below PerDayRate with the same formula, so an
// override can never produce a net the formula would not.
type Row struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	TaxDeduction decimal.Decimal `json:"tax_deduction"`
	CasualDays   float64         `json:"casual_days"`
	SickDays     float64         `json:"sick_days"`
	HalfDayCount int             `json:"half_day_count"`
	LateDays     float64         `json:"late_days"`
	// PendingLeaveDays feeds the retention score only, never a deduction.
	PendingLeaveDays   float64         `json:"pending_leave_days"`
	ReimbursementTotal decimal.Decimal `json:"reimbursement_total"`

	// Derived by Recompute.
	UnpaidCasualDays  float64         `json:"unpaid_casual_days"`
	UnpaidSickDays    float64         `json:"unpaid_sick_days"`
	PerDayRate        decimal.Decimal `json:"per_day_rate"`
	LeaveDeduction    decimal.Decimal `json:"leave_deduction"`
	LateDeduction     decimal.Decimal `json:"late_deduction"`
	NetSalary         decimal.Decimal `json:"net_salary"`
	RetentionScore    float64         `json:"retention_score"`
	RetentionEligible bool            `json:"retention_eligible"`
	BonusAmount       decimal.Decimal `json:"bonus_amount"`
}

// Recompute derives every calculated field from the input fields.
func (r *Row) Recompute() {
	r.UnpaidCasualDays = math.Max(0, r.CasualDays-FreeCasualDaysPerMonth)
	r.UnpaidSickDays = math.Max(0, r.SickDays-FreeSickDaysPerMonth)

	r.PerDayRate = r.BaseSalary.Div(divisor)

	unpaidDays := decimal.NewFromFloat(r.UnpaidCasualDays + r.UnpaidSickDays)
	r.LeaveDeduction = r.PerDayRate.Mul(unpaidDays).Round(2)
	r.LateDeduction = r.PerDayRate.Mul(decimal.NewFromFloat(r.LateDays)).Round(2)

	r.NetSalary = r.BaseSalary.
		Sub(r.TaxDeduction).
		Sub(r.LeaveDeduction).
		Sub(r.LateDeduction).
		Add(r.ReimbursementTotal).
		Round(2)

	r.RetentionScore = r.CasualDays + r.SickDays + r.PendingLeaveDays +
		r.LateDays + 0.5*float64(r.HalfDayCount)
	r.RetentionEligible = r.RetentionScore < retentionScoreThreshold
	if r.RetentionEligible {
		r.BonusAmount = r.PerDayRate.Mul(decimal.NewFromInt(retentionBonusDays)).Round(2)
	} else {
		r.BonusAmount = decimal.Zero
	}

	r.PerDayRate = r.PerDayRate.Round(2)
}
