// Package servicetest provides in-memory fakes of the repository and
// transactor interfaces for service tests.
package servicetest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/attendance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/leave"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/payroll"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/reimbursement"
)

// Transactor runs the unit of work directly; the fakes mutate in place, so
// there is nothing to commit or roll back. Service-level atomicity against
// a real store is the postgres transactor's job.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type EmployeeRepo struct {
	Employees map[string]employee.Employee
}

func NewEmployeeRepo() *EmployeeRepo {
	return &EmployeeRepo{Employees: make(map[string]employee.Employee)}
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.Employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.Employees {
		if e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EmployeeRepo) ListByManager(_ context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.Employees {
		if e.Active && e.ManagerID != nil && *e.ManagerID == managerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type BalanceRepo struct {
	Records map[string]balance.Record
	// FailAdjust, when set, is returned by every Adjust call. Lets tests
	// verify that workflow transactions propagate storage failures.
	FailAdjust error
}

func NewBalanceRepo() *BalanceRepo {
	return &BalanceRepo{Records: make(map[string]balance.Record)}
}

func (r *BalanceRepo) Get(_ context.Context, employeeID string) (balance.Record, error) {
	rec, ok := r.Records[employeeID]
	if !ok {
		return balance.Record{}, balance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *BalanceRepo) GetForUpdate(ctx context.Context, employeeID string) (balance.Record, error) {
	return r.Get(ctx, employeeID)
}

func (r *BalanceRepo) Create(_ context.Context, record balance.Record) error {
	if _, ok := r.Records[record.EmployeeID]; ok {
		return nil
	}
	r.Records[record.EmployeeID] = record
	return nil
}

func (r *BalanceRepo) Adjust(_ context.Context, employeeID string, field balance.Field, delta float64) error {
	if r.FailAdjust != nil {
		return r.FailAdjust
	}
	rec, ok := r.Records[employeeID]
	if !ok {
		return balance.ErrRecordNotFound
	}
	switch field {
	case balance.FieldCasualBalance:
		rec.CasualBalance += delta
	case balance.FieldCasualUsedMonth:
		rec.CasualUsedMonth += delta
	case balance.FieldSickBalance:
		rec.SickBalance += delta
	case balance.FieldSickUsedMonth:
		rec.SickUsedMonth += delta
	case balance.FieldHalfDayCount:
		rec.HalfDayCount += delta
	case balance.FieldLateWarnings:
		rec.LateWarningsLeft += delta
	default:
		return balance.ErrUnknownField
	}
	r.Records[employeeID] = rec
	return nil
}

func (r *BalanceRepo) ResetPeriodCounters(_ context.Context, employeeID string) error {
	rec, ok := r.Records[employeeID]
	if !ok {
		return balance.ErrRecordNotFound
	}
	rec.CasualUsedMonth = 0
	rec.SickUsedMonth = 0
	rec.LateWarningsLeft = balance.DefaultLateWarnings
	r.Records[employeeID] = rec
	return nil
}

type LeaveRepo struct {
	Requests map[string]leave.Request
}

func NewLeaveRepo() *LeaveRepo {
	return &LeaveRepo{Requests: make(map[string]leave.Request)}
}

func (r *LeaveRepo) Create(_ context.Context, request leave.Request) (leave.Request, error) {
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now()
	}
	r.Requests[request.ID] = request
	return request, nil
}

func (r *LeaveRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	lr, ok := r.Requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return lr, nil
}

func (r *LeaveRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, lr := range r.Requests {
		if lr.EmployeeID == employeeID {
			out = append(out, lr)
		}
	}
	return out, nil
}

func (r *LeaveRepo) ListByManagerAndStatus(_ context.Context, managerID string, status leave.Status) ([]leave.Request, error) {
	var out []leave.Request
	for _, lr := range r.Requests {
		if lr.ManagerID == managerID && lr.Status == status {
			out = append(out, lr)
		}
	}
	return out, nil
}

func (r *LeaveRepo) ListByStatus(_ context.Context, status leave.Status) ([]leave.Request, error) {
	var out []leave.Request
	for _, lr := range r.Requests {
		if lr.Status == status {
			out = append(out, lr)
		}
	}
	return out, nil
}

func (r *LeaveRepo) Transition(_ context.Context, t leave.Transition) error {
	lr, ok := r.Requests[t.ID]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if lr.Status != t.From {
		return leave.ErrAlreadyProcessed
	}
	lr.Status = t.To
	switch t.To {
	case leave.StatusApproved:
		at := t.At
		actor := t.ActorID
		lr.ApprovedAt = &at
		lr.ApprovedBy = &actor
	case leave.StatusRejected:
		reason := t.Reason
		lr.RejectionReason = &reason
	case leave.StatusEscalated:
		note := t.Reason
		lr.Comment = &note
	case leave.StatusCancelled:
		at := t.At
		actor := t.ActorID
		lr.CancelledAt = &at
		lr.CancelledBy = &actor
	}
	r.Requests[t.ID] = lr
	return nil
}

func (r *LeaveRepo) PeriodSummary(_ context.Context, employeeID string, periodStart, periodEnd time.Time) (leave.PeriodSummary, error) {
	var s leave.PeriodSummary
	for _, lr := range r.Requests {
		if lr.EmployeeID != employeeID || lr.StartDate.Before(periodStart) || !lr.StartDate.Before(periodEnd) {
			continue
		}
		switch {
		case lr.Status == leave.StatusApproved && lr.Type == leave.TypeCasual:
			s.CasualApprovedDays += lr.TotalDays
		case lr.Status == leave.StatusApproved && lr.Type == leave.TypeSick:
			s.SickApprovedDays += lr.TotalDays
		case lr.Status == leave.StatusApproved && lr.Type == leave.TypeHalfDay:
			s.HalfDayApprovedCount++
		case (lr.Status == leave.StatusPending || lr.Status == leave.StatusEscalated) && lr.Type != leave.TypeHalfDay:
			s.PendingDays += lr.TotalDays
		}
	}
	return s, nil
}

type AttendanceRepo struct {
	Records map[string]attendance.Record
}

func NewAttendanceRepo() *AttendanceRepo {
	return &AttendanceRepo{Records: make(map[string]attendance.Record)}
}

func (r *AttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	for _, existing := range r.Records {
		if existing.EmployeeID == record.EmployeeID && existing.Day.Equal(record.Day) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	r.Records[record.ID] = record
	return record, nil
}

func (r *AttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	rec, ok := r.Records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (r *AttendanceRepo) GetByEmployeeAndDay(_ context.Context, employeeID string, day time.Time) (attendance.Record, error) {
	for _, rec := range r.Records {
		if rec.EmployeeID == employeeID && rec.Day.Equal(day) {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (r *AttendanceRepo) ListByDay(_ context.Context, day time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.Records {
		if rec.Day.Equal(day) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *AttendanceRepo) ListByEmployee(_ context.Context, employeeID string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.Records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *AttendanceRepo) TransitionRemote(_ context.Context, t attendance.RemoteTransition) error {
	rec, ok := r.Records[t.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	if rec.RemoteStatus == nil {
		return attendance.ErrNotRemoteCheckIn
	}
	if *rec.RemoteStatus != attendance.RemoteStatusPending {
		return attendance.ErrRemoteAlreadyProcessed
	}
	to := t.To
	at := t.At
	actor := t.ActorID
	rec.RemoteStatus = &to
	rec.ProcessedAt = &at
	rec.ProcessedBy = &actor
	if t.Comment != "" {
		comment := t.Comment
		rec.Comment = &comment
	}
	r.Records[t.ID] = rec
	return nil
}

func (r *AttendanceRepo) SumLateSeverity(_ context.Context, employeeID string, periodStart, periodEnd time.Time) (float64, error) {
	var total float64
	for _, rec := range r.Records {
		if rec.EmployeeID == employeeID && !rec.Day.Before(periodStart) && rec.Day.Before(periodEnd) {
			total += rec.LateSeverity
		}
	}
	return total, nil
}

type ReimbursementRepo struct {
	Claims map[string]reimbursement.Claim
}

func NewReimbursementRepo() *ReimbursementRepo {
	return &ReimbursementRepo{Claims: make(map[string]reimbursement.Claim)}
}

func (r *ReimbursementRepo) Create(_ context.Context, claim reimbursement.Claim) (reimbursement.Claim, error) {
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = time.Now()
	}
	r.Claims[claim.ID] = claim
	return claim, nil
}

func (r *ReimbursementRepo) GetByID(_ context.Context, id string) (reimbursement.Claim, error) {
	c, ok := r.Claims[id]
	if !ok {
		return reimbursement.Claim{}, reimbursement.ErrClaimNotFound
	}
	return c, nil
}

func (r *ReimbursementRepo) ListByEmployee(_ context.Context, employeeID string) ([]reimbursement.Claim, error) {
	var out []reimbursement.Claim
	for _, c := range r.Claims {
		if c.EmployeeID == employeeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ReimbursementRepo) ListByStatus(_ context.Context, status reimbursement.Status) ([]reimbursement.Claim, error) {
	var out []reimbursement.Claim
	for _, c := range r.Claims {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ReimbursementRepo) Transition(_ context.Context, t reimbursement.Transition) error {
	c, ok := r.Claims[t.ID]
	if !ok {
		return reimbursement.ErrClaimNotFound
	}
	if c.Status != t.From {
		return reimbursement.ErrAlreadyProcessed
	}
	c.Status = t.To
	at := t.At
	actor := t.ActorID
	c.ProcessedAt = &at
	c.ProcessedBy = &actor
	if t.Reason != "" {
		reason := t.Reason
		c.RejectionReason = &reason
	}
	r.Claims[t.ID] = c
	return nil
}

func (r *ReimbursementRepo) SumApprovedInPeriod(_ context.Context, employeeID string, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range r.Claims {
		if c.EmployeeID == employeeID && c.Status == reimbursement.StatusApproved &&
			!c.PaymentDate.Before(periodStart) && c.PaymentDate.Before(periodEnd) {
			total = total.Add(c.Amount)
		}
	}
	return total, nil
}

type SalaryConfigRepo struct {
	Configs []payroll.SalaryConfig
}

func (r *SalaryConfigRepo) GetActiveByEmployee(_ context.Context, employeeID string) (payroll.SalaryConfig, error) {
	for _, c := range r.Configs {
		if c.EmployeeID == employeeID && c.Active {
			return c, nil
		}
	}
	return payroll.SalaryConfig{}, payroll.ErrSalaryConfigNotFound
}

func (r *SalaryConfigRepo) ListActive(_ context.Context) ([]payroll.SalaryConfig, error) {
	var out []payroll.SalaryConfig
	for _, c := range r.Configs {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

type periodKey struct {
	EmployeeID string
	Month      int
	Year       int
}

type PayslipRepo struct {
	Slips    map[string]payroll.Payslip
	byPeriod map[periodKey]string
}

func NewPayslipRepo() *PayslipRepo {
	return &PayslipRepo{
		Slips:    make(map[string]payroll.Payslip),
		byPeriod: make(map[periodKey]string),
	}
}

func (r *PayslipRepo) InsertIfAbsent(_ context.Context, payslip payroll.Payslip) (bool, error) {
	key := periodKey{payslip.EmployeeID, payslip.Month, payslip.Year}
	if _, ok := r.byPeriod[key]; ok {
		return false, nil
	}
	if payslip.GeneratedAt.IsZero() {
		payslip.GeneratedAt = time.Now()
	}
	r.Slips[payslip.ID] = payslip
	r.byPeriod[key] = payslip.ID
	return true, nil
}

func (r *PayslipRepo) ExistsForPeriod(_ context.Context, employeeID string, month, year int) (bool, error) {
	_, ok := r.byPeriod[periodKey{employeeID, month, year}]
	return ok, nil
}

func (r *PayslipRepo) GetByID(_ context.Context, id string) (payroll.Payslip, error) {
	p, ok := r.Slips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return p, nil
}

func (r *PayslipRepo) ListByEmployee(_ context.Context, employeeID string) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, p := range r.Slips {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

type BonusLedgerRepo struct {
	Entries map[periodKey]payroll.BonusEntry
	Totals  map[string]decimal.Decimal
}

func NewBonusLedgerRepo() *BonusLedgerRepo {
	return &BonusLedgerRepo{
		Entries: make(map[periodKey]payroll.BonusEntry),
		Totals:  make(map[string]decimal.Decimal),
	}
}

func (r *BonusLedgerRepo) InsertEntryIfAbsent(_ context.Context, entry payroll.BonusEntry) (bool, error) {
	key := periodKey{entry.EmployeeID, entry.Month, entry.Year}
	if _, ok := r.Entries[key]; ok {
		return false, nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.Entries[key] = entry
	return true, nil
}

func (r *BonusLedgerRepo) AddToTotal(_ context.Context, employeeID string, amount decimal.Decimal) error {
	r.Totals[employeeID] = r.Totals[employeeID].Add(amount)
	return nil
}

func (r *BonusLedgerRepo) GetLedger(_ context.Context, employeeID string) (payroll.BonusLedger, error) {
	return payroll.BonusLedger{EmployeeID: employeeID, Total: r.Totals[employeeID]}, nil
}

func (r *BonusLedgerRepo) ListEntries(_ context.Context, employeeID string) ([]payroll.BonusEntry, error) {
	var out []payroll.BonusEntry
	for _, e := range r.Entries {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out, nil
}
