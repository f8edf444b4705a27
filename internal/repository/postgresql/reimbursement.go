package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/reimbursement"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
)

type reimbursementRepositoryImpl struct {
	db *database.DB
}

func NewReimbursementRepository(db *database.DB) reimbursement.Repository {
	return &reimbursementRepositoryImpl{db: db}
}

const reimbursementColumns = `
	id, employee_id, payment_date, amount, reason, receipt_url, status,
	rejection_reason, processed_by, processed_at, created_at, updated_at
`

func scanReimbursement(row pgx.Row) (reimbursement.Claim, error) {
	var c reimbursement.Claim
	err := row.Scan(
		&c.ID,
		&c.EmployeeID,
		&c.PaymentDate,
		&c.Amount,
		&c.Reason,
		&c.ReceiptURL,
		&c.Status,
		&c.RejectionReason,
		&c.ProcessedBy,
		&c.ProcessedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create implements reimbursement.Repository.
func (r *reimbursementRepositoryImpl) Create(ctx context.Context, claim reimbursement.Claim) (reimbursement.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reimbursements (id, employee_id, payment_date, amount, reason, receipt_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		claim.ID,
		claim.EmployeeID,
		claim.PaymentDate,
		claim.Amount,
		claim.Reason,
		claim.ReceiptURL,
		claim.Status,
	).Scan(&claim.CreatedAt, &claim.UpdatedAt)
	if err != nil {
		return reimbursement.Claim{}, err
	}
	return claim, nil
}

// GetByID implements reimbursement.Repository.
func (r *reimbursementRepositoryImpl) GetByID(ctx context.Context, id string) (reimbursement.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE id = $1`

	c, err := scanReimbursement(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reimbursement.Claim{}, reimbursement.ErrClaimNotFound
		}
		return reimbursement.Claim{}, err
	}
	return c, nil
}

func (r *reimbursementRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]reimbursement.Claim, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []reimbursement.Claim
	for rows.Next() {
		c, err := scanReimbursement(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// ListByEmployee implements reimbursement.Repository.
func (r *reimbursementRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]reimbursement.Claim, error) {
	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE employee_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, employeeID)
}

// ListByStatus implements reimbursement.Repository.
func (r *reimbursementRepositoryImpl) ListByStatus(ctx context.Context, status reimbursement.Status) ([]reimbursement.Claim, error) {
	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE status = $1 ORDER BY created_at`
	return r.list(ctx, query, status)
}

// Transition implements reimbursement.Repository.
func (r *reimbursementRepositoryImpl) Transition(ctx context.Context, t reimbursement.Transition) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reimbursements
		SET status = $1, rejection_reason = NULLIF($2, ''), processed_by = $3, processed_at = $4, updated_at = now()
		WHERE id = $5 AND status = $6
	`

	tag, err := q.Exec(ctx, query, t.To, t.Reason, t.ActorID, t.At, t.ID, t.From)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
		return reimbursement.ErrAlreadyProcessed
	}
	return nil
}

// SumApprovedInPeriod implements reimbursement.Repository.
func (r *reimbursementRepositoryImpl) SumApprovedInPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM reimbursements
		WHERE employee_id = $1 AND status = 'Approved' AND payment_date >= $2 AND payment_date < $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, periodStart, periodEnd).Scan(&total); err != nil {
		return decimal.Decimal{}, err
	}
	return total, nil
}
