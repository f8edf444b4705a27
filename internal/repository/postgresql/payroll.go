package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/payroll"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
)

type salaryConfigRepositoryImpl struct {
	db *database.DB
}

func NewSalaryConfigRepository(db *database.DB) payroll.SalaryConfigRepository {
	return &salaryConfigRepositoryImpl{db: db}
}

const salaryConfigColumns = `
	id, employee_id, base_salary, tax_deduction, active, created_at, updated_at
`

func scanSalaryConfig(row pgx.Row) (payroll.SalaryConfig, error) {
	var sc payroll.SalaryConfig
	err := row.Scan(
		&sc.ID,
		&sc.EmployeeID,
		&sc.BaseSalary,
		&sc.TaxDeduction,
		&sc.Active,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	)
	return sc, err
}

// GetActiveByEmployee implements payroll.SalaryConfigRepository.
func (r *salaryConfigRepositoryImpl) GetActiveByEmployee(ctx context.Context, employeeID string) (payroll.SalaryConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryConfigColumns + ` FROM salary_configs WHERE employee_id = $1 AND active`

	sc, err := scanSalaryConfig(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryConfig{}, payroll.ErrSalaryConfigNotFound
		}
		return payroll.SalaryConfig{}, err
	}
	return sc, nil
}

// ListActive implements payroll.SalaryConfigRepository.
func (r *salaryConfigRepositoryImpl) ListActive(ctx context.Context) ([]payroll.SalaryConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryConfigColumns + ` FROM salary_configs WHERE active ORDER BY employee_id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []payroll.SalaryConfig
	for rows.Next() {
		sc, err := scanSalaryConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, sc)
	}
	return configs, rows.Err()
}

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipColumns = `
	id, employee_id, month, year, base_salary, tax_deduction, casual_days, sick_days,
	half_day_count, unpaid_casual_days, unpaid_sick_days, late_days, per_day_rate,
	leave_deduction, late_deduction, reimbursement_total, net_salary, generated_at
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.Month,
		&p.Year,
		&p.BaseSalary,
		&p.TaxDeduction,
		&p.CasualDays,
		&p.SickDays,
		&p.HalfDayCount,
		&p.UnpaidCasualDays,
		&p.UnpaidSickDays,
		&p.LateDays,
		&p.PerDayRate,
		&p.LeaveDeduction,
		&p.LateDeduction,
		&p.ReimbursementTotal,
		&p.NetSalary,
		&p.GeneratedAt,
	)
	return p, err
}

// InsertIfAbsent implements payroll.PayslipRepository. ON CONFLICT DO
// NOTHING on the (employee_id, month, year) key makes finalization
// write-once no matter how often the batch re-runs.
func (r *payslipRepositoryImpl) InsertIfAbsent(ctx context.Context, payslip payroll.Payslip) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			id, employee_id, month, year, base_salary, tax_deduction, casual_days, sick_days,
			half_day_count, unpaid_casual_days, unpaid_sick_days, late_days, per_day_rate,
			leave_deduction, late_deduction, reimbursement_total, net_salary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (employee_id, month, year) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		payslip.ID,
		payslip.EmployeeID,
		payslip.Month,
		payslip.Year,
		payslip.BaseSalary,
		payslip.TaxDeduction,
		payslip.CasualDays,
		payslip.SickDays,
		payslip.HalfDayCount,
		payslip.UnpaidCasualDays,
		payslip.UnpaidSickDays,
		payslip.LateDays,
		payslip.PerDayRate,
		payslip.LeaveDeduction,
		payslip.LateDeduction,
		payslip.ReimbursementTotal,
		payslip.NetSalary,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ExistsForPeriod implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM payslips WHERE employee_id = $1 AND month = $2 AND year = $3)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, month, year).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE id = $1`

	p, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, err
	}
	return p, nil
}

// ListByEmployee implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE employee_id = $1 ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

type bonusLedgerRepositoryImpl struct {
	db *database.DB
}

func NewBonusLedgerRepository(db *database.DB) payroll.BonusLedgerRepository {
	return &bonusLedgerRepositoryImpl{db: db}
}

// InsertEntryIfAbsent implements payroll.BonusLedgerRepository.
func (r *bonusLedgerRepositoryImpl) InsertEntryIfAbsent(ctx context.Context, entry payroll.BonusEntry) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO retention_bonus_entries (id, employee_id, month, year, score, eligible, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, month, year) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.Month,
		entry.Year,
		entry.Score,
		entry.Eligible,
		entry.Amount,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// AddToTotal implements payroll.BonusLedgerRepository.
func (r *bonusLedgerRepositoryImpl) AddToTotal(ctx context.Context, employeeID string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO retention_bonus_ledgers (employee_id, total)
		VALUES ($1, $2)
		ON CONFLICT (employee_id) DO UPDATE
		SET total = retention_bonus_ledgers.total + EXCLUDED.total, updated_at = now()
	`

	_, err := q.Exec(ctx, query, employeeID, amount)
	return err
}

// GetLedger implements payroll.BonusLedgerRepository. An employee with no
// settled period yet reads as a zero ledger.
func (r *bonusLedgerRepositoryImpl) GetLedger(ctx context.Context, employeeID string) (payroll.BonusLedger, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT employee_id, total, updated_at FROM retention_bonus_ledgers WHERE employee_id = $1`

	var l payroll.BonusLedger
	err := q.QueryRow(ctx, query, employeeID).Scan(&l.EmployeeID, &l.Total, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.BonusLedger{EmployeeID: employeeID, Total: decimal.Zero}, nil
		}
		return payroll.BonusLedger{}, err
	}
	return l, nil
}

// ListEntries implements payroll.BonusLedgerRepository.
func (r *bonusLedgerRepositoryImpl) ListEntries(ctx context.Context, employeeID string) ([]payroll.BonusEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, score, eligible, amount, created_at
		FROM retention_bonus_entries
		WHERE employee_id = $1
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []payroll.BonusEntry
	for rows.Next() {
		var e payroll.BonusEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Month, &e.Year, &e.Score, &e.Eligible, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
