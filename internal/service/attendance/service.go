package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peoplekit/hrledger-backend-go/internal/config"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/attendance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/database"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/utils"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

type Service struct {
	tx        database.Transactor
	records   attendance.Repository
	employees employee.Repository
	balances  balance.Service
	office    config.OfficeConfig
	loc       *time.Location
}

func NewService(tx database.Transactor, records attendance.Repository, employees employee.Repository, balances balance.Service, office config.OfficeConfig, loc *time.Location) *Service {
	return &Service{
		tx:        tx,
		records:   records,
		employees: employees,
		balances:  balances,
		office:    office,
		loc:       loc,
	}
}

var _ attendance.Service = (*Service)(nil)

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) CheckIn(ctx context.Context, actor employee.Actor, req attendance.CheckInRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	now := time.Now().In(s.loc)
	today := day(now)

	if _, err := s.records.GetByEmployeeAndDay(ctx, actor.ID, today); err == nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.Record{}, fmt.Errorf("check existing attendance: %w", err)
	}

	remoteMode := attendance.RemoteMode(req.RemoteMode)
	distance := utils.HaversineDistanceMeters(req.Latitude, req.Longitude, s.office.Latitude, s.office.Longitude)
	if req.RemoteMode == "" && distance > s.office.GeofenceRadiusMeters {
		// Nothing is recorded; the caller chooses a remote mode and retries.
		return attendance.Record{}, &attendance.OutOfRangeError{
			DistanceMeters: distance,
			RadiusMeters:   s.office.GeofenceRadiusMeters,
		}
	}

	record := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: actor.ID,
		CheckinAt:  now,
		Day:        today,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}
	if req.RemoteMode != "" {
		emp, err := s.employees.GetByID(ctx, actor.ID)
		if err != nil {
			return attendance.Record{}, fmt.Errorf("get employee: %w", err)
		}
		pending := attendance.RemoteStatusPending
		record.RemoteStatus = &pending
		record.ManagerID = emp.ManagerID
		record.IsWFH = remoteMode == attendance.RemoteModeWFH
		record.IsOutOfOffice = remoteMode == attendance.RemoteModeOutOfOffice
	}

	policy := attendance.LatePolicy{
		LateCutoffMinutes:    s.office.LateCutoffMinutes,
		FullDayCutoffMinutes: s.office.FullDayCutoffMinutes,
	}

	var created attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.balances.EnsureRecord(ctx, actor.ID); err != nil {
			return err
		}
		// Locked read: the warning check and its consumption must see the
		// same token count.
		bal, err := s.balances.GetForUpdate(ctx, actor.ID)
		if err != nil {
			return err
		}

		outcome := policy.Evaluate(attendance.MinutesSinceMidnight(now), bal.LateWarningsLeft)
		if outcome.ConsumeWarning {
			if err := s.balances.Adjust(ctx, actor.ID, balance.FieldLateWarnings, -1); err != nil {
				return err
			}
		}

		r := record
		r.IsLate = outcome.IsLate
		r.LateSeverity = outcome.Severity

		created, err = s.records.Create(ctx, r)
		return err
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return created, nil
}

func (s *Service) ApproveRemote(ctx context.Context, actor employee.Actor, recordID string) (attendance.Record, error) {
	t := attendance.RemoteTransition{
		ID:      recordID,
		To:      attendance.RemoteStatusApproved,
		ActorID: actor.ID,
		At:      time.Now(),
	}
	if err := s.records.TransitionRemote(ctx, t); err != nil {
		return attendance.Record{}, err
	}
	return s.records.GetByID(ctx, recordID)
}

func (s *Service) RejectRemote(ctx context.Context, actor employee.Actor, recordID string, reason string) (attendance.Record, error) {
	if validator.IsEmpty(reason) {
		return attendance.Record{}, validator.ValidationErrors{}.Add("reason", "is required")
	}

	t := attendance.RemoteTransition{
		ID:      recordID,
		To:      attendance.RemoteStatusRejected,
		ActorID: actor.ID,
		Comment: reason,
		At:      time.Now(),
	}
	if err := s.records.TransitionRemote(ctx, t); err != nil {
		return attendance.Record{}, err
	}
	return s.records.GetByID(ctx, recordID)
}

func (s *Service) TodayLog(ctx context.Context) ([]attendance.Record, error) {
	return s.records.ListByDay(ctx, day(time.Now().In(s.loc)))
}

func (s *Service) MyRecords(ctx context.Context, actor employee.Actor) ([]attendance.Record, error) {
	return s.records.ListByEmployee(ctx, actor.ID)
}
