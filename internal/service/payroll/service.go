package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/attendance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/leave"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/payroll"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/reimbursement"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/pdf"
)

type Service struct {
	tx             database.Transactor
	employees      employee.Repository
	leaves         leave.Repository
	attendances    attendance.Repository
	reimbursements reimbursement.Repository
	salaryConfigs  payroll.SalaryConfigRepository
	payslips       payroll.PayslipRepository
	bonuses        payroll.BonusLedgerRepository
	balances       balance.Service
}

func NewService(
	tx database.Transactor,
	employees employee.Repository,
	leaves leave.Repository,
	attendances attendance.Repository,
	reimbursements reimbursement.Repository,
	salaryConfigs payroll.SalaryConfigRepository,
	payslips payroll.PayslipRepository,
	bonuses payroll.BonusLedgerRepository,
	balances balance.Service,
) *Service {
	return &Service{
		tx:             tx,
		employees:      employees,
		leaves:         leaves,
		attendances:    attendances,
		reimbursements: reimbursements,
		salaryConfigs:  salaryConfigs,
		payslips:       payslips,
		bonuses:        bonuses,
		balances:       balances,
	}
}

var _ payroll.Service = (*Service)(nil)

// periodBounds converts a 0-11 period key into [start, end) date bounds.
func periodBounds(p payroll.Period) (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month+1), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (s *Service) Compute(ctx context.Context, period payroll.Period) ([]payroll.Row, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	start, end := periodBounds(period)

	configs, err := s.salaryConfigs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list salary configs: %w", err)
	}

	var rows []payroll.Row
	for _, cfg := range configs {
		log := slog.With("employee_id", cfg.EmployeeID, "month", period.Month, "year", period.Year)

		settled, err := s.payslips.ExistsForPeriod(ctx, cfg.EmployeeID, period.Month, period.Year)
		if err != nil {
			log.Error("payroll compute: payslip lookup failed", "error", err)
			continue
		}
		if settled {
			log.Info("payroll compute: period already settled, skipping")
			continue
		}

		emp, err := s.employees.GetByID(ctx, cfg.EmployeeID)
		if err != nil {
			log.Error("payroll compute: employee lookup failed", "error", err)
			continue
		}

		summary, err := s.leaves.PeriodSummary(ctx, cfg.EmployeeID, start, end)
		if err != nil {
			log.Error("payroll compute: leave summary failed", "error", err)
			continue
		}
		lateDays, err := s.attendances.SumLateSeverity(ctx, cfg.EmployeeID, start, end)
		if err != nil {
			log.Error("payroll compute: late severity sum failed", "error", err)
			continue
		}
		reimbursed, err := s.reimbursements.SumApprovedInPeriod(ctx, cfg.EmployeeID, start, end)
		if err != nil {
			log.Error("payroll compute: reimbursement sum failed", "error", err)
			continue
		}

		row := payroll.Row{
			EmployeeID:         cfg.EmployeeID,
			EmployeeName:       emp.Name,
			Month:              period.Month,
			Year:               period.Year,
			BaseSalary:         cfg.BaseSalary,
			TaxDeduction:       cfg.TaxDeduction,
			CasualDays:         summary.CasualApprovedDays,
			SickDays:           summary.SickApprovedDays,
			HalfDayCount:       summary.HalfDayApprovedCount,
			LateDays:           lateDays,
			PendingLeaveDays:   summary.PendingDays,
			ReimbursementTotal: reimbursed,
		}
		row.Recompute()
		rows = append(rows, row)
	}
	return rows, nil
}

// errPeriodAlreadySettled marks a finalize row whose payslip already exists.
var errPeriodAlreadySettled = errors.New("period already settled")

func (s *Service) Finalize(ctx context.Context, req payroll.FinalizeRequest) (payroll.FinalizeResult, error) {
	if err := req.Period.Validate(); err != nil {
		return payroll.FinalizeResult{}, err
	}

	var result payroll.FinalizeResult
	for _, row := range req.Rows {
		// The period key comes from the request; rows cannot finalize into
		// a different month. Recompute re-derives every calculated field,
		// so an edited row settles at what the formula says, nothing else.
		row.Month = req.Month
		row.Year = req.Year
		row.Recompute()

		err := s.finalizeOne(ctx, row)
		log := slog.With("employee_id", row.EmployeeID, "month", req.Month, "year", req.Year)
		switch {
		case err == nil:
			result.Finalized = append(result.Finalized, row.EmployeeID)
		case errors.Is(err, errPeriodAlreadySettled):
			log.Info("payroll finalize: period already settled, skipping")
			result.Skipped = append(result.Skipped, row.EmployeeID)
		default:
			// One employee's failure never aborts the batch; the run can be
			// repeated for the failed rows.
			log.Error("payroll finalize: employee failed", "error", err)
			result.Failed = append(result.Failed, row.EmployeeID)
		}
	}
	return result, nil
}

// finalizeOne settles one employee atomically: payslip, counter reset and
// bonus ledger move together or not at all.
func (s *Service) finalizeOne(ctx context.Context, row payroll.Row) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payslip := payslipFromRow(row)
		inserted, err := s.payslips.InsertIfAbsent(ctx, payslip)
		if err != nil {
			return fmt.Errorf("insert payslip: %w", err)
		}
		if !inserted {
			return errPeriodAlreadySettled
		}

		if _, err := s.balances.EnsureRecord(ctx, row.EmployeeID); err != nil {
			return err
		}
		if err := s.balances.ResetPeriodCounters(ctx, row.EmployeeID); err != nil {
			return fmt.Errorf("reset period counters: %w", err)
		}

		entry := payroll.BonusEntry{
			ID:         uuid.NewString(),
			EmployeeID: row.EmployeeID,
			Month:      row.Month,
			Year:       row.Year,
			Score:      row.RetentionScore,
			Eligible:   row.RetentionEligible,
			Amount:     row.BonusAmount,
		}
		entryInserted, err := s.bonuses.InsertEntryIfAbsent(ctx, entry)
		if err != nil {
			return fmt.Errorf("insert bonus entry: %w", err)
		}
		// The total moves only with a fresh entry, so a replayed period can
		// never double-pay the bonus.
		if entryInserted && row.BonusAmount.IsPositive() {
			if err := s.bonuses.AddToTotal(ctx, row.EmployeeID, row.BonusAmount); err != nil {
				return fmt.Errorf("add to bonus total: %w", err)
			}
		}
		return nil
	})
}

func payslipFromRow(row payroll.Row) payroll.Payslip {
	return payroll.Payslip{
		ID:                 uuid.NewString(),
		EmployeeID:         row.EmployeeID,
		Month:              row.Month,
		Year:               row.Year,
		BaseSalary:         row.BaseSalary,
		TaxDeduction:       row.TaxDeduction,
		CasualDays:         row.CasualDays,
		SickDays:           row.SickDays,
		HalfDayCount:       row.HalfDayCount,
		UnpaidCasualDays:   row.UnpaidCasualDays,
		UnpaidSickDays:     row.UnpaidSickDays,
		LateDays:           row.LateDays,
		PerDayRate:         row.PerDayRate,
		LeaveDeduction:     row.LeaveDeduction,
		LateDeduction:      row.LateDeduction,
		ReimbursementTotal: row.ReimbursementTotal,
		NetSalary:          row.NetSalary,
	}
}

func (s *Service) MyPayslips(ctx context.Context, actor employee.Actor) ([]payroll.Payslip, error) {
	return s.payslips.ListByEmployee(ctx, actor.ID)
}

func (s *Service) PayslipPDF(ctx context.Context, actor employee.Actor, payslipID string) ([]byte, string, error) {
	payslip, err := s.payslips.GetByID(ctx, payslipID)
	if err != nil {
		return nil, "", err
	}
	if payslip.EmployeeID != actor.ID && !actor.IsFounder() {
		return nil, "", payroll.ErrNotPayslipOwner
	}

	emp, err := s.employees.GetByID(ctx, payslip.EmployeeID)
	if err != nil {
		return nil, "", fmt.Errorf("get employee: %w", err)
	}

	content, err := pdf.RenderPayslip(payslip, emp.Name)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("payslip-%s-%d-%02d.pdf", payslip.EmployeeID, payslip.Year, payslip.Month+1)
	return content, filename, nil
}

func (s *Service) MyBonus(ctx context.Context, actor employee.Actor) (payroll.BonusLedger, []payroll.BonusEntry, error) {
	ledger, err := s.bonuses.GetLedger(ctx, actor.ID)
	if err != nil {
		return payroll.BonusLedger{}, nil, err
	}
	entries, err := s.bonuses.ListEntries(ctx, actor.ID)
	if err != nil {
		return payroll.BonusLedger{}, nil, err
	}
	return ledger, entries, nil
}
