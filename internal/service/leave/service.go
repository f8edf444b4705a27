package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/leave"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

type Service struct {
	tx        database.Transactor
	requests  leave.Repository
	employees employee.Repository
	balances  balance.Service
	loc       *time.Location
}

func NewService(tx database.Transactor, requests leave.Repository, employees employee.Repository, balances balance.Service, loc *time.Location) *Service {
	return &Service{
		tx:        tx,
		requests:  requests,
		employees: employees,
		balances:  balances,
		loc:       loc,
	}
}

var _ leave.Service = (*Service)(nil)

func (s *Service) today() time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) Create(ctx context.Context, actor employee.Actor, req leave.CreateRequest) (leave.Request, error) {
	start, end, err := req.Validate()
	if err != nil {
		return leave.Request{}, err
	}

	typ := leave.Type(req.Type)
	totalDays := leave.TotalDays(start, end, req.IsHalfDay)

	if err := leave.ValidateRules(typ, start, end, totalDays, req.IsHalfDay, req.Session, req.DocumentURL, s.today()); err != nil {
		return leave.Request{}, err
	}

	emp, err := s.employees.GetByID(ctx, actor.ID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("get employee: %w", err)
	}
	if emp.ManagerID == nil {
		return leave.Request{}, employee.ErrNoAssignedManager
	}

	request := leave.Request{
		ID:         uuid.NewString(),
		EmployeeID: actor.ID,
		ManagerID:  *emp.ManagerID,
		Type:       typ,
		StartDate:  start,
		EndDate:    end,
		IsHalfDay:  req.IsHalfDay,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	}
	if req.Session != "" {
		session := leave.Session(req.Session)
		request.Session = &session
	}
	if req.DocumentURL != "" {
		request.DocumentURL = &req.DocumentURL
	}

	var created leave.Request
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.balances.EnsureRecord(ctx, actor.ID); err != nil {
			return err
		}
		// The locked read makes the quota check and the decrement one
		// atomic unit: two racing requests cannot both pass it.
		record, err := s.balances.GetForUpdate(ctx, actor.ID)
		if err != nil {
			return err
		}

		r := request
		if leave.AutoApprovable(typ, totalDays, record.SickUsedMonth) {
			now := time.Now()
			r.Status = leave.StatusApproved
			r.ApprovedAt = &now
			if err := s.balances.Adjust(ctx, actor.ID, balance.FieldSickBalance, -totalDays); err != nil {
				return err
			}
			if err := s.balances.Adjust(ctx, actor.ID, balance.FieldSickUsedMonth, totalDays); err != nil {
				return err
			}
		}

		created, err = s.requests.Create(ctx, r)
		return err
	})
	if err != nil {
		return leave.Request{}, fmt.Errorf("create leave request: %w", err)
	}
	return created, nil
}

func (s *Service) Cancel(ctx context.Context, actor employee.Actor, requestID string) (leave.Request, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.EmployeeID != actor.ID {
		return leave.Request{}, leave.ErrNotRequestOwner
	}

	t := leave.Transition{
		ID:      requestID,
		From:    leave.StatusPending,
		To:      leave.StatusCancelled,
		ActorID: actor.ID,
		At:      time.Now(),
	}
	if err := s.requests.Transition(ctx, t); err != nil {
		return leave.Request{}, err
	}
	return s.requests.GetByID(ctx, requestID)
}

// decisionSource returns the status an approval or rejection must start
// from, enforcing who may decide at that stage.
func decisionSource(request leave.Request, actor employee.Actor) (leave.Status, error) {
	switch request.Status {
	case leave.StatusPending:
		if request.ManagerID != actor.ID {
			return "", leave.ErrNotRequestManager
		}
		return leave.StatusPending, nil
	case leave.StatusEscalated:
		if !actor.IsFounder() {
			return "", leave.ErrFounderDecisionRequired
		}
		return leave.StatusEscalated, nil
	default:
		return "", leave.ErrAlreadyProcessed
	}
}

func (s *Service) Approve(ctx context.Context, actor employee.Actor, requestID string) (leave.Request, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		from, err := decisionSource(request, actor)
		if err != nil {
			return err
		}

		t := leave.Transition{
			ID:      requestID,
			From:    from,
			To:      leave.StatusApproved,
			ActorID: actor.ID,
			At:      time.Now(),
		}
		if err := s.requests.Transition(ctx, t); err != nil {
			return err
		}

		if _, err := s.balances.EnsureRecord(ctx, request.EmployeeID); err != nil {
			return err
		}
		switch request.Type {
		case leave.TypeCasual:
			if err := s.balances.Adjust(ctx, request.EmployeeID, balance.FieldCasualBalance, -request.TotalDays); err != nil {
				return err
			}
			if err := s.balances.Adjust(ctx, request.EmployeeID, balance.FieldCasualUsedMonth, request.TotalDays); err != nil {
				return err
			}
		case leave.TypeSick:
			if err := s.balances.Adjust(ctx, request.EmployeeID, balance.FieldSickBalance, -request.TotalDays); err != nil {
				return err
			}
			if err := s.balances.Adjust(ctx, request.EmployeeID, balance.FieldSickUsedMonth, request.TotalDays); err != nil {
				return err
			}
		case leave.TypeHalfDay:
			if err := s.balances.Adjust(ctx, request.EmployeeID, balance.FieldHalfDayCount, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}
	return s.requests.GetByID(ctx, requestID)
}

func (s *Service) Reject(ctx context.Context, actor employee.Actor, requestID string, reason string) (leave.Request, error) {
	if validator.IsEmpty(reason) {
		return leave.Request{}, validator.ValidationErrors{}.Add("reason", "is required")
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	from, err := decisionSource(request, actor)
	if err != nil {
		return leave.Request{}, err
	}

	t := leave.Transition{
		ID:      requestID,
		From:    from,
		To:      leave.StatusRejected,
		ActorID: actor.ID,
		Reason:  reason,
		At:      time.Now(),
	}
	if err := s.requests.Transition(ctx, t); err != nil {
		return leave.Request{}, err
	}
	return s.requests.GetByID(ctx, requestID)
}

func (s *Service) Escalate(ctx context.Context, actor employee.Actor, requestID string, note string) (leave.Request, error) {
	if validator.IsEmpty(note) {
		return leave.Request{}, validator.ValidationErrors{}.Add("reason", "is required")
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.ManagerID != actor.ID {
		return leave.Request{}, leave.ErrNotRequestManager
	}

	t := leave.Transition{
		ID:      requestID,
		From:    leave.StatusPending,
		To:      leave.StatusEscalated,
		ActorID: actor.ID,
		Reason:  note,
		At:      time.Now(),
	}
	if err := s.requests.Transition(ctx, t); err != nil {
		return leave.Request{}, err
	}
	return s.requests.GetByID(ctx, requestID)
}

func (s *Service) MyRequests(ctx context.Context, actor employee.Actor) ([]leave.Request, error) {
	return s.requests.ListByEmployee(ctx, actor.ID)
}

func (s *Service) PendingForManager(ctx context.Context, actor employee.Actor) ([]leave.Request, error) {
	return s.requests.ListByManagerAndStatus(ctx, actor.ID, leave.StatusPending)
}

func (s *Service) Escalated(ctx context.Context) ([]leave.Request, error) {
	return s.requests.ListByStatus(ctx, leave.StatusEscalated)
}
