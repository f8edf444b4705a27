package balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
)

// Service is the single write path for ledger counters. It owns no
// transactions of its own: callers adjust balances inside their workflow
// transaction so the counter moves with the sibling writes or not at all.
type Service struct {
	balance.Repository
}

func NewService(repository balance.Repository) *Service {
	return &Service{Repository: repository}
}

var _ balance.Service = (*Service)(nil)

func (s *Service) EnsureRecord(ctx context.Context, employeeID string) (balance.Record, error) {
	record, err := s.Repository.Get(ctx, employeeID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, balance.ErrRecordNotFound) {
		return balance.Record{}, fmt.Errorf("get balance record: %w", err)
	}

	if err := s.Repository.Create(ctx, balance.NewDefaultRecord(employeeID)); err != nil {
		return balance.Record{}, fmt.Errorf("create balance record: %w", err)
	}
	// Re-read rather than return the default: a concurrent creator may have
	// won the insert.
	record, err = s.Repository.Get(ctx, employeeID)
	if err != nil {
		return balance.Record{}, fmt.Errorf("get balance record after create: %w", err)
	}
	return record, nil
}

func (s *Service) Adjust(ctx context.Context, employeeID string, field balance.Field, delta float64) error {
	if !field.Valid() {
		return balance.ErrUnknownField
	}
	if err := s.Repository.Adjust(ctx, employeeID, field, delta); err != nil {
		return fmt.Errorf("adjust %s by %v: %w", field, delta, err)
	}
	return nil
}
