package attendance

import (
	"context"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
)

type Service interface {
	CheckIn(ctx context.Context, actor employee.Actor, req CheckInRequest) (Record, error)
	ApproveRemote(ctx context.Context, actor employee.Actor, recordID string) (Record, error)
	RejectRemote(ctx context.Context, actor employee.Actor, recordID string, reason string) (Record, error)
	TodayLog(ctx context.Context) ([]Record, error)
	MyRecords(ctx context.Context, actor employee.Actor) ([]Record, error)
}
