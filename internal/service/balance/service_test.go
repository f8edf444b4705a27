package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/service/servicetest"
)

func TestEnsureRecordCreatesDefaults(t *testing.T) {
	repo := servicetest.NewBalanceRepo()
	svc := NewService(repo)

	record, err := svc.EnsureRecord(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, float64(balance.DefaultCasualTotal), record.CasualBalance)
	assert.Equal(t, float64(balance.DefaultSickTotal), record.SickBalance)
	assert.Equal(t, float64(balance.DefaultLateWarnings), record.LateWarningsLeft)
	assert.Equal(t, 0.0, record.CasualUsedMonth)
}

func TestEnsureRecordKeepsExisting(t *testing.T) {
	repo := servicetest.NewBalanceRepo()
	svc := NewService(repo)

	existing := balance.NewDefaultRecord("emp-1")
	existing.CasualBalance = 7
	repo.Records["emp-1"] = existing

	record, err := svc.EnsureRecord(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 7.0, record.CasualBalance)
}

func TestAdjustRejectsUnknownField(t *testing.T) {
	repo := servicetest.NewBalanceRepo()
	svc := NewService(repo)
	repo.Records["emp-1"] = balance.NewDefaultRecord("emp-1")

	err := svc.Adjust(context.Background(), "emp-1", balance.Field("salary; DROP TABLE"), 1)
	assert.ErrorIs(t, err, balance.ErrUnknownField)
}

func TestAdjustMayGoNegative(t *testing.T) {
	repo := servicetest.NewBalanceRepo()
	svc := NewService(repo)
	repo.Records["emp-1"] = balance.NewDefaultRecord("emp-1")

	// Over-consumption is settled by payroll, not rejected here.
	err := svc.Adjust(context.Background(), "emp-1", balance.FieldSickBalance, -15)
	require.NoError(t, err)
	assert.Equal(t, -3.0, repo.Records["emp-1"].SickBalance)
}
