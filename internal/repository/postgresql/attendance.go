package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/attendance"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	id, employee_id, checkin_at, day, latitude, longitude, is_wfh, is_out_of_office,
	is_late, late_severity, remote_status, manager_id, processed_by, processed_at, comment, created_at
`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.CheckinAt,
		&rec.Day,
		&rec.Latitude,
		&rec.Longitude,
		&rec.IsWFH,
		&rec.IsOutOfOffice,
		&rec.IsLate,
		&rec.LateSeverity,
		&rec.RemoteStatus,
		&rec.ManagerID,
		&rec.ProcessedBy,
		&rec.ProcessedAt,
		&rec.Comment,
		&rec.CreatedAt,
	)
	return rec, err
}

// Create implements attendance.Repository. The unique (employee_id, day)
// index is the last line of defense against a double check-in racing past
// the service's existence check.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, checkin_at, day, latitude, longitude, is_wfh, is_out_of_office,
			is_late, late_severity, remote_status, manager_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.CheckinAt,
		record.Day,
		record.Latitude,
		record.Longitude,
		record.IsWFH,
		record.IsOutOfOffice,
		record.IsLate,
		record.LateSeverity,
		record.RemoteStatus,
		record.ManagerID,
	).Scan(&record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, err
	}
	return record, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

// GetByEmployeeAndDay implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND day = $2`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByDay implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByDay(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE day = $1 ORDER BY checkin_at`
	return r.list(ctx, query, day)
}

// ListByEmployee implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 ORDER BY day DESC`
	return r.list(ctx, query, employeeID)
}

// TransitionRemote implements attendance.Repository. Guarded on the remote
// status still being pending.
func (r *attendanceRepositoryImpl) TransitionRemote(ctx context.Context, t attendance.RemoteTransition) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET remote_status = $1, processed_by = $2, processed_at = $3, comment = NULLIF($4, '')
		WHERE id = $5 AND remote_status = $6
	`

	tag, err := q.Exec(ctx, query, t.To, t.ActorID, t.At, t.Comment, t.ID, attendance.RemoteStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		rec, err := r.GetByID(ctx, t.ID)
		if err != nil {
			return err
		}
		if rec.RemoteStatus == nil {
			return attendance.ErrNotRemoteCheckIn
		}
		return attendance.ErrRemoteAlreadyProcessed
	}
	return nil
}

// SumLateSeverity implements attendance.Repository.
func (r *attendanceRepositoryImpl) SumLateSeverity(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(late_severity), 0)
		FROM attendance_records
		WHERE employee_id = $1 AND day >= $2 AND day < $3
	`

	var total float64
	if err := q.QueryRow(ctx, query, employeeID, periodStart, periodEnd).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
