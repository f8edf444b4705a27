package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/leave"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.Repository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	id, employee_id, manager_id, type, start_date, end_date, is_half_day, session,
	total_days, reason, document_url, status, approved_by, approved_at,
	rejection_reason, comment, cancelled_by, cancelled_at, requested_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.ManagerID,
		&lr.Type,
		&lr.StartDate,
		&lr.EndDate,
		&lr.IsHalfDay,
		&lr.Session,
		&lr.TotalDays,
		&lr.Reason,
		&lr.DocumentURL,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.ApprovedAt,
		&lr.RejectionReason,
		&lr.Comment,
		&lr.CancelledBy,
		&lr.CancelledAt,
		&lr.RequestedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.Repository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, manager_id, type, start_date, end_date, is_half_day, session,
			total_days, reason, document_url, status, approved_by, approved_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING requested_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.ManagerID,
		request.Type,
		request.StartDate,
		request.EndDate,
		request.IsHalfDay,
		request.Session,
		request.TotalDays,
		request.Reason,
		request.DocumentURL,
		request.Status,
		request.ApprovedBy,
		request.ApprovedAt,
	).Scan(&request.RequestedAt, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.Request{}, err
	}
	return request, nil
}

// GetByID implements leave.Repository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// ListByEmployee implements leave.Repository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests WHERE employee_id = $1 ORDER BY requested_at DESC`
	return r.list(ctx, query, employeeID)
}

// ListByManagerAndStatus implements leave.Repository.
func (r *leaveRequestRepositoryImpl) ListByManagerAndStatus(ctx context.Context, managerID string, status leave.Status) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests WHERE manager_id = $1 AND status = $2 ORDER BY requested_at`
	return r.list(ctx, query, managerID, status)
}

// ListByStatus implements leave.Repository.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.Status) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + `
		FROM leave_requests WHERE status = $1 ORDER BY requested_at`
	return r.list(ctx, query, status)
}

// Transition implements leave.Repository. The WHERE clause carries the
// expected source status, so a request that was processed concurrently is
// left untouched and reported as already processed.
func (r *leaveRequestRepositoryImpl) Transition(ctx context.Context, t leave.Transition) error {
	q := GetQuerier(ctx, r.db)

	var query string
	var args []interface{}

	switch t.To {
	case leave.StatusApproved:
		query = `
			UPDATE leave_requests
			SET status = $1, approved_by = $2, approved_at = $3, updated_at = now()
			WHERE id = $4 AND status = $5
		`
		args = []interface{}{t.To, t.ActorID, t.At, t.ID, t.From}
	case leave.StatusRejected:
		query = `
			UPDATE leave_requests
			SET status = $1, rejection_reason = $2, updated_at = now()
			WHERE id = $3 AND status = $4
		`
		args = []interface{}{t.To, t.Reason, t.ID, t.From}
	case leave.StatusEscalated:
		query = `
			UPDATE leave_requests
			SET status = $1, comment = $2, updated_at = now()
			WHERE id = $3 AND status = $4
		`
		args = []interface{}{t.To, t.Reason, t.ID, t.From}
	case leave.StatusCancelled:
		query = `
			UPDATE leave_requests
			SET status = $1, cancelled_by = $2, cancelled_at = $3, updated_at = now()
			WHERE id = $4 AND status = $5
		`
		args = []interface{}{t.To, t.ActorID, t.At, t.ID, t.From}
	default:
		return fmt.Errorf("unsupported leave transition to %q", t.To)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a vanished request from one that moved on.
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
		return leave.ErrAlreadyProcessed
	}
	return nil
}

// PeriodSummary implements leave.Repository.
func (r *leaveRequestRepositoryImpl) PeriodSummary(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (leave.PeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(total_days) FILTER (WHERE status = 'Approved' AND type = 'CL'), 0),
			COALESCE(SUM(total_days) FILTER (WHERE status = 'Approved' AND type = 'SL'), 0),
			COALESCE(COUNT(*) FILTER (WHERE status = 'Approved' AND type = 'HDL'), 0),
			COALESCE(SUM(total_days) FILTER (WHERE status IN ('Pending', 'Escalated') AND type IN ('CL', 'SL')), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND start_date >= $2 AND start_date < $3
	`

	var s leave.PeriodSummary
	err := q.QueryRow(ctx, query, employeeID, periodStart, periodEnd).Scan(
		&s.CasualApprovedDays,
		&s.SickApprovedDays,
		&s.HalfDayApprovedCount,
		&s.PendingDays,
	)
	if err != nil {
		return leave.PeriodSummary{}, err
	}
	return s, nil
}
