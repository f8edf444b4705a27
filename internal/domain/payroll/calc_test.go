package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestRecomputeReferenceExample(t *testing.T) {
	// 30000 base, 1000 tax, 5 casual days (1 unpaid), 500 reimbursed.
	row := Row{
		BaseSalary:         d("30000"),
		TaxDeduction:       d("1000"),
		CasualDays:         5,
		ReimbursementTotal: d("500"),
	}
	row.Recompute()

	assert.Equal(t, 1.0, row.UnpaidCasualDays)
	assert.True(t, row.PerDayRate.Equal(d("1000")), "per day rate %s", row.PerDayRate)
	assert.True(t, row.LeaveDeduction.Equal(d("1000")), "leave deduction %s", row.LeaveDeduction)
	assert.True(t, row.NetSalary.Equal(d("28500")), "net %s", row.NetSalary)
}

func TestRecomputeFreeAllowances(t *testing.T) {
	row := Row{
		BaseSalary:   d("30000"),
		TaxDeduction: d("0"),
		CasualDays:   4,
		SickDays:     2,
	}
	row.Recompute()

	assert.Zero(t, row.UnpaidCasualDays)
	assert.Zero(t, row.UnpaidSickDays)
	assert.True(t, row.LeaveDeduction.IsZero())
	assert.True(t, row.NetSalary.Equal(d("30000")))
}

func TestRecomputeLateDeduction(t *testing.T) {
	// One half-day and one full-day lateness.
	row := Row{
		BaseSalary: d("30000"),
		LateDays:   1.5,
	}
	row.Recompute()

	assert.True(t, row.LateDeduction.Equal(d("1500")), "late deduction %s", row.LateDeduction)
	assert.True(t, row.NetSalary.Equal(d("28500")))
}

func TestRecomputeRetention(t *testing.T) {
	t.Run("clean month earns the bonus", func(t *testing.T) {
		row := Row{BaseSalary: d("30000")}
		row.Recompute()

		assert.Zero(t, row.RetentionScore)
		assert.True(t, row.RetentionEligible)
		assert.True(t, row.BonusAmount.Equal(d("2000")), "bonus %s", row.BonusAmount)
	})

	t.Run("score just below threshold", func(t *testing.T) {
		row := Row{BaseSalary: d("30000"), SickDays: 1, HalfDayCount: 1}
		row.Recompute()

		assert.Equal(t, 1.5, row.RetentionScore)
		assert.True(t, row.RetentionEligible)
	})

	t.Run("threshold itself is ineligible", func(t *testing.T) {
		row := Row{BaseSalary: d("30000"), CasualDays: 1, PendingLeaveDays: 1}
		row.Recompute()

		assert.Equal(t, 2.0, row.RetentionScore)
		assert.False(t, row.RetentionEligible)
		assert.True(t, row.BonusAmount.IsZero())
	})

	t.Run("pending days count toward the score but not the net", func(t *testing.T) {
		with := Row{BaseSalary: d("30000"), PendingLeaveDays: 3}
		with.Recompute()
		without := Row{BaseSalary: d("30000")}
		without.Recompute()

		assert.True(t, with.NetSalary.Equal(without.NetSalary))
		assert.False(t, with.RetentionEligible)
	})
}

func TestRecomputeOverrideKeepsFormula(t *testing.T) {
	row := Row{
		BaseSalary:   d("30000"),
		TaxDeduction: d("1000"),
		CasualDays:   5,
	}
	row.Recompute()
	first := row.NetSalary

	// Operator override of an input field re-derives the net.
	row.CasualDays = 6
	row.Recompute()
	assert.True(t, row.NetSalary.Equal(first.Sub(d("1000"))), "net %s", row.NetSalary)

	// Recompute is a fixed point: running it again changes nothing.
	again := row
	again.Recompute()
	assert.Equal(t, row, again)
}

func TestRecomputeFractionalRate(t *testing.T) {
	row := Row{BaseSalary: d("10000"), CasualDays: 5}
	row.Recompute()

	// 10000/30 = 333.333...; deduction rounds to cents.
	assert.True(t, row.LeaveDeduction.Equal(d("333.33")), "leave deduction %s", row.LeaveDeduction)
	assert.True(t, row.PerDayRate.Equal(d("333.33")))
}
