package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
)

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) balance.Repository {
	return &balanceRepositoryImpl{db: db}
}

const balanceColumns = `
	employee_id, cl_total, cl_balance, cl_used_month, sl_total, sl_balance, sl_used_month,
	hdl_count, late_warnings_left, created_at, updated_at
`

func scanBalance(row pgx.Row) (balance.Record, error) {
	var rec balance.Record
	err := row.Scan(
		&rec.EmployeeID,
		&rec.CasualTotal,
		&rec.CasualBalance,
		&rec.CasualUsedMonth,
		&rec.SickTotal,
		&rec.SickBalance,
		&rec.SickUsedMonth,
		&rec.HalfDayCount,
		&rec.LateWarningsLeft,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

// Get implements balance.Repository.
func (r *balanceRepositoryImpl) Get(ctx context.Context, employeeID string) (balance.Record, error) {
	return r.get(ctx, employeeID, false)
}

// GetForUpdate implements balance.Repository.
func (r *balanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string) (balance.Record, error) {
	return r.get(ctx, employeeID, true)
}

func (r *balanceRepositoryImpl) get(ctx context.Context, employeeID string, forUpdate bool) (balance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + balanceColumns + ` FROM leave_balances WHERE employee_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rec, err := scanBalance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return balance.Record{}, balance.ErrRecordNotFound
		}
		return balance.Record{}, err
	}
	return rec, nil
}

// Create implements balance.Repository.
func (r *balanceRepositoryImpl) Create(ctx context.Context, record balance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			employee_id, cl_total, cl_balance, cl_used_month,
			sl_total, sl_balance, sl_used_month, hdl_count, late_warnings_left
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id) DO NOTHING
	`

	_, err := q.Exec(ctx, query,
		record.EmployeeID,
		record.CasualTotal,
		record.CasualBalance,
		record.CasualUsedMonth,
		record.SickTotal,
		record.SickBalance,
		record.SickUsedMonth,
		record.HalfDayCount,
		record.LateWarningsLeft,
	)
	return err
}

// Adjust implements balance.Repository. The field name is interpolated into
// the statement, so it must come from the closed Field enum.
func (r *balanceRepositoryImpl) Adjust(ctx context.Context, employeeID string, field balance.Field, delta float64) error {
	if !field.Valid() {
		return balance.ErrUnknownField
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE leave_balances
		SET %s = %s + $1, updated_at = now()
		WHERE employee_id = $2
	`, field, field)

	tag, err := q.Exec(ctx, query, delta, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return balance.ErrRecordNotFound
	}
	return nil
}

// ResetPeriodCounters implements balance.Repository.
func (r *balanceRepositoryImpl) ResetPeriodCounters(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET cl_used_month = 0, sl_used_month = 0, late_warnings_left = $1, updated_at = now()
		WHERE employee_id = $2
	`

	tag, err := q.Exec(ctx, query, balance.DefaultLateWarnings, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return balance.ErrRecordNotFound
	}
	return nil
}
