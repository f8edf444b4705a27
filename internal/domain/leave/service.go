package leave

import (
	"context"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
)

type Service interface {
	Create(ctx context.Context, actor employee.Actor, req CreateRequest) (Request, error)
	Cancel(ctx context.Context, actor employee.Actor, requestID string) (Request, error)
	Approve(ctx context.Context, actor employee.Actor, requestID string) (Request, error)
	Reject(ctx context.Context, actor employee.Actor, requestID string, reason string) (Request, error)
	Escalate(ctx context.Context, actor employee.Actor, requestID string, note string) (Request, error)
	MyRequests(ctx context.Context, actor employee.Actor) ([]Request, error)
	PendingForManager(ctx context.Context, actor employee.Actor) ([]Request, error)
	Escalated(ctx context.Context) ([]Request, error)
}
