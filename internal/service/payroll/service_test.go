package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/leave"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/payroll"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/reimbursement"
	balancesvc "github.com/peoplekit/hrledger-backend-go/internal/service/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/service/servicetest"
)

type payrollFixture struct {
	svc            *Service
	employees      *servicetest.EmployeeRepo
	leaves         *servicetest.LeaveRepo
	attendances    *servicetest.AttendanceRepo
	reimbursements *servicetest.ReimbursementRepo
	salaryConfigs  *servicetest.SalaryConfigRepo
	payslips       *servicetest.PayslipRepo
	bonuses        *servicetest.BonusLedgerRepo
	balances       *servicetest.BalanceRepo
}

func newPayrollFixture(t *testing.T) *payrollFixture {
	t.Helper()

	f := &payrollFixture{
		employees:      servicetest.NewEmployeeRepo(),
		leaves:         servicetest.NewLeaveRepo(),
		attendances:    servicetest.NewAttendanceRepo(),
		reimbursements: servicetest.NewReimbursementRepo(),
		salaryConfigs:  &servicetest.SalaryConfigRepo{},
		payslips:       servicetest.NewPayslipRepo(),
		bonuses:        servicetest.NewBonusLedgerRepo(),
		balances:       servicetest.NewBalanceRepo(),
	}
	f.svc = NewService(
		&servicetest.Transactor{},
		f.employees,
		f.leaves,
		f.attendances,
		f.reimbursements,
		f.salaryConfigs,
		f.payslips,
		f.bonuses,
		balancesvc.NewService(f.balances),
	)
	return f
}

// July 2025 in the engine's 0-11 month keying.
var testPeriod = payroll.Period{Month: 6, Year: 2025}

func (f *payrollFixture) addEmployee(id, name string, base, tax int64) {
	f.employees.Employees[id] = employee.Employee{ID: id, Name: name, Role: employee.RoleEmployee, Active: true}
	f.salaryConfigs.Configs = append(f.salaryConfigs.Configs, payroll.SalaryConfig{
		ID:           "cfg-" + id,
		EmployeeID:   id,
		BaseSalary:   decimal.NewFromInt(base),
		TaxDeduction: decimal.NewFromInt(tax),
		Active:       true,
	})
}

func (f *payrollFixture) addApprovedLeave(id, employeeID string, typ leave.Type, days float64) {
	f.leaves.Requests[id] = leave.Request{
		ID:         id,
		EmployeeID: employeeID,
		Type:       typ,
		StartDate:  time.Date(testPeriod.Year, time.Month(testPeriod.Month+1), 10, 0, 0, 0, 0, time.UTC),
		TotalDays:  days,
		Status:     leave.StatusApproved,
	}
}

func TestComputeReferenceExample(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)
	f.addApprovedLeave("lr-1", "emp-1", leave.TypeCasual, 5)

	claim := reimbursement.Claim{
		ID:          "rc-1",
		EmployeeID:  "emp-1",
		PaymentDate: time.Date(testPeriod.Year, time.Month(testPeriod.Month+1), 15, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(500),
		Status:      reimbursement.StatusApproved,
	}
	f.reimbursements.Claims[claim.ID] = claim

	rows, err := f.svc.Compute(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 1.0, row.UnpaidCasualDays)
	assert.True(t, row.PerDayRate.Equal(decimal.NewFromInt(1000)), "per day rate %s", row.PerDayRate)
	assert.True(t, row.NetSalary.Equal(decimal.NewFromInt(28500)), "net salary %s", row.NetSalary)
}

func TestComputeSkipsSettledPeriod(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)
	f.addEmployee("emp-2", "Ravi", 45000, 2000)

	_, err := f.payslips.InsertIfAbsent(context.Background(), payroll.Payslip{
		ID: "slip-1", EmployeeID: "emp-1", Month: testPeriod.Month, Year: testPeriod.Year,
	})
	require.NoError(t, err)

	rows, err := f.svc.Compute(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-2", rows[0].EmployeeID)
}

func TestComputeSkipsMissingEmployee(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)
	// Orphan config: an employee row that was since deactivated and purged.
	f.salaryConfigs.Configs = append(f.salaryConfigs.Configs, payroll.SalaryConfig{
		ID:         "cfg-ghost",
		EmployeeID: "ghost",
		BaseSalary: decimal.NewFromInt(10000),
		Active:     true,
	})

	rows, err := f.svc.Compute(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].EmployeeID)
}

func TestComputeRejectsBadPeriod(t *testing.T) {
	f := newPayrollFixture(t)

	_, err := f.svc.Compute(context.Background(), payroll.Period{Month: 12, Year: 2025})
	assert.Error(t, err)
}

func computedRow(t *testing.T, f *payrollFixture) payroll.Row {
	t.Helper()
	rows, err := f.svc.Compute(context.Background(), testPeriod)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestFinalizeWritesPayslipAndResetsCounters(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)

	rec := balance.NewDefaultRecord("emp-1")
	rec.CasualUsedMonth = 3
	rec.SickUsedMonth = 1
	rec.LateWarningsLeft = 1
	f.balances.Records["emp-1"] = rec

	row := computedRow(t, f)
	result, err := f.svc.Finalize(context.Background(), payroll.FinalizeRequest{
		Period: testPeriod,
		Rows:   []payroll.Row{row},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"emp-1"}, result.Finalized)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Failed)

	exists, err := f.payslips.ExistsForPeriod(context.Background(), "emp-1", testPeriod.Month, testPeriod.Year)
	require.NoError(t, err)
	assert.True(t, exists)

	after := f.balances.Records["emp-1"]
	assert.Equal(t, 0.0, after.CasualUsedMonth)
	assert.Equal(t, 0.0, after.SickUsedMonth)
	assert.Equal(t, float64(balance.DefaultLateWarnings), after.LateWarningsLeft)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)

	row := computedRow(t, f)
	req := payroll.FinalizeRequest{Period: testPeriod, Rows: []payroll.Row{row}}

	first, err := f.svc.Finalize(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"emp-1"}, first.Finalized)

	second, err := f.svc.Finalize(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, second.Finalized)
	assert.Equal(t, []string{"emp-1"}, second.Skipped)

	assert.Len(t, f.payslips.Slips, 1)
}

func TestFinalizeCreditsBonusOnce(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)

	// No leave, no lateness: score 0, eligible, bonus 2 days' pay.
	row := computedRow(t, f)
	require.True(t, row.RetentionEligible)

	req := payroll.FinalizeRequest{Period: testPeriod, Rows: []payroll.Row{row}}
	_, err := f.svc.Finalize(context.Background(), req)
	require.NoError(t, err)
	_, err = f.svc.Finalize(context.Background(), req)
	require.NoError(t, err)

	ledger, entries, err := f.svc.MyBonus(context.Background(), employee.Actor{ID: "emp-1", Role: employee.RoleEmployee})
	require.NoError(t, err)
	assert.True(t, ledger.Total.Equal(decimal.NewFromInt(2000)), "bonus total %s", ledger.Total)
	assert.Len(t, entries, 1)
}

func TestFinalizeRecordsIneligibleEntryWithoutCredit(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)
	f.addApprovedLeave("lr-1", "emp-1", leave.TypeCasual, 3)

	row := computedRow(t, f)
	require.False(t, row.RetentionEligible)

	_, err := f.svc.Finalize(context.Background(), payroll.FinalizeRequest{
		Period: testPeriod,
		Rows:   []payroll.Row{row},
	})
	require.NoError(t, err)

	ledger, entries, err := f.svc.MyBonus(context.Background(), employee.Actor{ID: "emp-1", Role: employee.RoleEmployee})
	require.NoError(t, err)
	assert.True(t, ledger.Total.IsZero())
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Eligible)
	assert.True(t, entries[0].Amount.IsZero())
}

func TestFinalizeRecomputesEditedRows(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)

	row := computedRow(t, f)
	// A doctored net salary must not survive finalization.
	row.NetSalary = decimal.NewFromInt(999999)

	_, err := f.svc.Finalize(context.Background(), payroll.FinalizeRequest{
		Period: testPeriod,
		Rows:   []payroll.Row{row},
	})
	require.NoError(t, err)

	slips, err := f.payslips.ListByEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, slips, 1)
	assert.True(t, slips[0].NetSalary.Equal(decimal.NewFromInt(29000)), "net salary %s", slips[0].NetSalary)
}

func TestFinalizePinsPeriodFromRequest(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)

	row := computedRow(t, f)
	row.Month = 11
	row.Year = 2030

	_, err := f.svc.Finalize(context.Background(), payroll.FinalizeRequest{
		Period: testPeriod,
		Rows:   []payroll.Row{row},
	})
	require.NoError(t, err)

	exists, err := f.payslips.ExistsForPeriod(context.Background(), "emp-1", testPeriod.Month, testPeriod.Year)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.payslips.ExistsForPeriod(context.Background(), "emp-1", 11, 2030)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPayslipPDFOwnership(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee("emp-1", "Asha", 30000, 1000)

	inserted, err := f.payslips.InsertIfAbsent(context.Background(), payroll.Payslip{
		ID:         "slip-1",
		EmployeeID: "emp-1",
		Month:      testPeriod.Month,
		Year:       testPeriod.Year,
		BaseSalary: decimal.NewFromInt(30000),
		NetSalary:  decimal.NewFromInt(29000),
	})
	require.NoError(t, err)
	require.True(t, inserted)

	_, _, err = f.svc.PayslipPDF(context.Background(), employee.Actor{ID: "emp-2", Role: employee.RoleEmployee}, "slip-1")
	assert.ErrorIs(t, err, payroll.ErrNotPayslipOwner)

	content, filename, err := f.svc.PayslipPDF(context.Background(), employee.Actor{ID: "emp-1", Role: employee.RoleEmployee}, "slip-1")
	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Equal(t, "payslip-emp-1-2025-07.pdf", filename)

	// The founder can pull any payslip.
	_, _, err = f.svc.PayslipPDF(context.Background(), employee.Actor{ID: "founder-1", Role: employee.RoleFounder}, "slip-1")
	assert.NoError(t, err)
}
