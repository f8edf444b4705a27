package reimbursement

import (
	"context"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
)

type Service interface {
	Create(ctx context.Context, actor employee.Actor, req CreateRequest) (Claim, error)
	Cancel(ctx context.Context, actor employee.Actor, claimID string) (Claim, error)
	Approve(ctx context.Context, actor employee.Actor, claimID string) (Claim, error)
	Reject(ctx context.Context, actor employee.Actor, claimID string, reason string) (Claim, error)
	MyClaims(ctx context.Context, actor employee.Actor) ([]Claim, error)
	Pending(ctx context.Context) ([]Claim, error)
}
