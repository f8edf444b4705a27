package balance

import "context"

// Service is the single write path for ledger counters. Workflow services
// adjust balances through it inside their own transactions; nothing else
// in the codebase mutates a Record.
type Service interface {
	Get(ctx context.Context, employeeID string) (Record, error)
	GetForUpdate(ctx context.Context, employeeID string) (Record, error)
	// EnsureRecord creates the default ledger record if the employee has
	// none yet, and returns it.
	EnsureRecord(ctx context.Context, employeeID string) (Record, error)
	Adjust(ctx context.Context, employeeID string, field Field, delta float64) error
	ResetPeriodCounters(ctx context.Context, employeeID string) error
}
