package attendance

import (
	"context"
	"time"
)

// RemoteTransition moves a pending remote check-in to its final status.
type RemoteTransition struct {
	ID      string
	To      RemoteStatus
	ActorID string
	Comment string
	At      time.Time
}

type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (Record, error)
	ListByDay(ctx context.Context, day time.Time) ([]Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	TransitionRemote(ctx context.Context, t RemoteTransition) error
	// SumLateSeverity totals late severities over a payroll period.
	SumLateSeverity(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (float64, error)
}
