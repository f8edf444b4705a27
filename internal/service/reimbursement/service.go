package reimbursement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/reimbursement"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

type Service struct {
	claims reimbursement.Repository
}

func NewService(claims reimbursement.Repository) *Service {
	return &Service{claims: claims}
}

var _ reimbursement.Service = (*Service)(nil)

func (s *Service) Create(ctx context.Context, actor employee.Actor, req reimbursement.CreateRequest) (reimbursement.Claim, error) {
	paymentDate, amount, err := req.Validate()
	if err != nil {
		return reimbursement.Claim{}, err
	}

	claim := reimbursement.Claim{
		ID:          uuid.NewString(),
		EmployeeID:  actor.ID,
		PaymentDate: paymentDate,
		Amount:      amount,
		Reason:      req.Reason,
		Status:      reimbursement.StatusPending,
	}
	if req.ReceiptURL != "" {
		claim.ReceiptURL = &req.ReceiptURL
	}

	created, err := s.claims.Create(ctx, claim)
	if err != nil {
		return reimbursement.Claim{}, fmt.Errorf("create reimbursement claim: %w", err)
	}
	return created, nil
}

func (s *Service) Cancel(ctx context.Context, actor employee.Actor, claimID string) (reimbursement.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return reimbursement.Claim{}, err
	}
	if claim.EmployeeID != actor.ID {
		return reimbursement.Claim{}, reimbursement.ErrNotClaimOwner
	}

	t := reimbursement.Transition{
		ID:      claimID,
		From:    reimbursement.StatusPending,
		To:      reimbursement.StatusCancelled,
		ActorID: actor.ID,
		At:      time.Now(),
	}
	if err := s.claims.Transition(ctx, t); err != nil {
		return reimbursement.Claim{}, err
	}
	return s.claims.GetByID(ctx, claimID)
}

func (s *Service) Approve(ctx context.Context, actor employee.Actor, claimID string) (reimbursement.Claim, error) {
	t := reimbursement.Transition{
		ID:      claimID,
		From:    reimbursement.StatusPending,
		To:      reimbursement.StatusApproved,
		ActorID: actor.ID,
		At:      time.Now(),
	}
	if err := s.claims.Transition(ctx, t); err != nil {
		return reimbursement.Claim{}, err
	}
	return s.claims.GetByID(ctx, claimID)
}

func (s *Service) Reject(ctx context.Context, actor employee.Actor, claimID string, reason string) (reimbursement.Claim, error) {
	if validator.IsEmpty(reason) {
		return reimbursement.Claim{}, validator.ValidationErrors{}.Add("reason", "is required")
	}

	t := reimbursement.Transition{
		ID:      claimID,
		From:    reimbursement.StatusPending,
		To:      reimbursement.StatusRejected,
		ActorID: actor.ID,
		Reason:  reason,
		At:      time.Now(),
	}
	if err := s.claims.Transition(ctx, t); err != nil {
		return reimbursement.Claim{}, err
	}
	return s.claims.GetByID(ctx, claimID)
}

func (s *Service) MyClaims(ctx context.Context, actor employee.Actor) ([]reimbursement.Claim, error) {
	return s.claims.ListByEmployee(ctx, actor.ID)
}

func (s *Service) Pending(ctx context.Context) ([]reimbursement.Claim, error) {
	return s.claims.ListByStatus(ctx, reimbursement.StatusPending)
}
