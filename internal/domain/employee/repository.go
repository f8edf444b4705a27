package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListByManager(ctx context.Context, managerID string) ([]Employee, error)
}
