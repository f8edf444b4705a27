package balance

import "context"

type Repository interface {
	Get(ctx context.Context, employeeID string) (Record, error)
	// GetForUpdate locks the row for the remainder of the surrounding
	// transaction so a read-validate-write sequence observes a stable record.
	GetForUpdate(ctx context.Context, employeeID string) (Record, error)
	Create(ctx context.Context, record Record) error
	Adjust(ctx context.Context, employeeID string, field Field, delta float64) error
	ResetPeriodCounters(ctx context.Context, employeeID string) error
}
