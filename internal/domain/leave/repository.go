package leave

import (
	"context"
	"time"
)

// Transition describes a guarded status change. The store applies it only
// when the request is still in From; a request that moved on yields
// ErrAlreadyProcessed, never a second application.
type Transition struct {
	ID      string
	From    Status
	To      Status
	ActorID string
	// Reason is the rejection reason or escalation note, depending on To.
	Reason string
	At     time.Time
}

type Repository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListByManagerAndStatus(ctx context.Context, managerID string, status Status) ([]Request, error)
	ListByStatus(ctx context.Context, status Status) ([]Request, error)
	Transition(ctx context.Context, t Transition) error
	PeriodSummary(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (PeriodSummary, error)
}
