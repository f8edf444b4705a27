package reimbursement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/reimbursement"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
	"github.com/peoplekit/hrledger-backend-go/internal/service/servicetest"
)

func newClaimFixture(t *testing.T) (*Service, *servicetest.ReimbursementRepo) {
	t.Helper()
	claims := servicetest.NewReimbursementRepo()
	return NewService(claims), claims
}

func claimOwner() employee.Actor {
	return employee.Actor{ID: "emp-1", Role: employee.RoleEmployee}
}

func claimManager() employee.Actor {
	return employee.Actor{ID: "mgr-1", Role: employee.RoleManager}
}

func TestCreateClaim(t *testing.T) {
	svc, claims := newClaimFixture(t)

	created, err := svc.Create(context.Background(), claimOwner(), reimbursement.CreateRequest{
		PaymentDate: "2026-08-10",
		Amount:      "499.50",
		Reason:      "client travel",
	})
	require.NoError(t, err)

	assert.Equal(t, reimbursement.StatusPending, created.Status)
	assert.Equal(t, "499.5", created.Amount.String())
	assert.Len(t, claims.Claims, 1)
}

func TestCreateClaimValidation(t *testing.T) {
	svc, claims := newClaimFixture(t)

	_, err := svc.Create(context.Background(), claimOwner(), reimbursement.CreateRequest{
		PaymentDate: "10-08-2026",
		Amount:      "-5",
		Reason:      "",
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs.ToMap(), 3)
	assert.Empty(t, claims.Claims)
}

func seedPendingClaim(svc *Service, t *testing.T) reimbursement.Claim {
	t.Helper()
	claim, err := svc.Create(context.Background(), claimOwner(), reimbursement.CreateRequest{
		PaymentDate: "2026-08-10",
		Amount:      "120",
		Reason:      "team lunch",
	})
	require.NoError(t, err)
	return claim
}

func TestApproveClaimOnce(t *testing.T) {
	svc, _ := newClaimFixture(t)
	claim := seedPendingClaim(svc, t)

	approved, err := svc.Approve(context.Background(), claimManager(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, reimbursement.StatusApproved, approved.Status)

	_, err = svc.Approve(context.Background(), claimManager(), claim.ID)
	assert.ErrorIs(t, err, reimbursement.ErrAlreadyProcessed)
}

func TestRejectClaimNeedsReason(t *testing.T) {
	svc, _ := newClaimFixture(t)
	claim := seedPendingClaim(svc, t)

	_, err := svc.Reject(context.Background(), claimManager(), claim.ID, "")
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	rejected, err := svc.Reject(context.Background(), claimManager(), claim.ID, "no receipt")
	require.NoError(t, err)
	assert.Equal(t, reimbursement.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
}

func TestCancelClaimOwnership(t *testing.T) {
	svc, _ := newClaimFixture(t)
	claim := seedPendingClaim(svc, t)

	_, err := svc.Cancel(context.Background(), claimManager(), claim.ID)
	assert.ErrorIs(t, err, reimbursement.ErrNotClaimOwner)

	cancelled, err := svc.Cancel(context.Background(), claimOwner(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, reimbursement.StatusCancelled, cancelled.Status)
}
