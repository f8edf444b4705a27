package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplekit/hrledger-backend-go/internal/config"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/attendance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
	balancesvc "github.com/peoplekit/hrledger-backend-go/internal/service/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/service/servicetest"
)

const (
	officeLat = 12.910490
	officeLng = 77.635276
)

type attendanceFixture struct {
	svc      *Service
	records  *servicetest.AttendanceRepo
	balances *servicetest.BalanceRepo
}

// The late cutoffs are pinned so the outcome does not depend on the wall
// clock the test happens to run at: 1440 means every arrival is on time,
// -1 means every arrival is past the cutoff.
func newAttendanceFixture(t *testing.T, lateCutoff, fullDayCutoff int) *attendanceFixture {
	t.Helper()

	records := servicetest.NewAttendanceRepo()
	balances := servicetest.NewBalanceRepo()
	employees := servicetest.NewEmployeeRepo()

	managerID := "mgr-1"
	employees.Employees["emp-1"] = employee.Employee{
		ID:        "emp-1",
		Name:      "Asha",
		Role:      employee.RoleEmployee,
		ManagerID: &managerID,
		Active:    true,
	}

	office := config.OfficeConfig{
		Latitude:             officeLat,
		Longitude:            officeLng,
		GeofenceRadiusMeters: 200,
		LateCutoffMinutes:    lateCutoff,
		FullDayCutoffMinutes: fullDayCutoff,
	}
	svc := NewService(&servicetest.Transactor{}, records, employees, balancesvc.NewService(balances), office, time.UTC)
	return &attendanceFixture{svc: svc, records: records, balances: balances}
}

func checkInActor() employee.Actor {
	return employee.Actor{ID: "emp-1", Role: employee.RoleEmployee}
}

func TestCheckInOnTimeInsideGeofence(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)

	record, err := f.svc.CheckIn(context.Background(), checkInActor(), attendance.CheckInRequest{
		Latitude:  officeLat,
		Longitude: officeLng,
	})
	require.NoError(t, err)

	assert.False(t, record.IsLate)
	assert.Equal(t, attendance.SeverityNone, record.LateSeverity)
	assert.Nil(t, record.RemoteStatus)
	assert.Equal(t, balance.DefaultLateWarnings, int(f.balances.Records["emp-1"].LateWarningsLeft))
}

func TestCheckInOutsideGeofenceWithoutRemoteMode(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)

	_, err := f.svc.CheckIn(context.Background(), checkInActor(), attendance.CheckInRequest{
		Latitude:  officeLat + 1,
		Longitude: officeLng,
	})

	var oor *attendance.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Greater(t, oor.DistanceMeters, oor.RadiusMeters)
	assert.Empty(t, f.records.Records)
}

func TestCheckInOutsideGeofenceAsWFH(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)

	record, err := f.svc.CheckIn(context.Background(), checkInActor(), attendance.CheckInRequest{
		Latitude:   officeLat + 1,
		Longitude:  officeLng,
		RemoteMode: string(attendance.RemoteModeWFH),
	})
	require.NoError(t, err)

	assert.True(t, record.IsWFH)
	assert.False(t, record.IsOutOfOffice)
	require.NotNil(t, record.RemoteStatus)
	assert.Equal(t, attendance.RemoteStatusPending, *record.RemoteStatus)
	require.NotNil(t, record.ManagerID)
	assert.Equal(t, "mgr-1", *record.ManagerID)
}

func TestCheckInLateConsumesWarningFirst(t *testing.T) {
	f := newAttendanceFixture(t, -1, 1441)

	record, err := f.svc.CheckIn(context.Background(), checkInActor(), attendance.CheckInRequest{
		Latitude:  officeLat,
		Longitude: officeLng,
	})
	require.NoError(t, err)

	// The warning absorbs the lateness; the record stays clean.
	assert.False(t, record.IsLate)
	assert.Equal(t, attendance.SeverityNone, record.LateSeverity)
	assert.Equal(t, 2.0, f.balances.Records["emp-1"].LateWarningsLeft)
}

func TestCheckInLateWithNoWarningsHalfDay(t *testing.T) {
	f := newAttendanceFixture(t, -1, 1441)
	rec := balance.NewDefaultRecord("emp-1")
	rec.LateWarningsLeft = 0
	f.balances.Records["emp-1"] = rec

	record, err := f.svc.CheckIn(context.Background(), checkInActor(), attendance.CheckInRequest{
		Latitude:  officeLat,
		Longitude: officeLng,
	})
	require.NoError(t, err)

	assert.True(t, record.IsLate)
	assert.Equal(t, attendance.SeverityHalfDay, record.LateSeverity)
	assert.Equal(t, 0.0, f.balances.Records["emp-1"].LateWarningsLeft)
}

func TestCheckInLateWithNoWarningsFullDay(t *testing.T) {
	f := newAttendanceFixture(t, -1, 0)
	rec := balance.NewDefaultRecord("emp-1")
	rec.LateWarningsLeft = 0
	f.balances.Records["emp-1"] = rec

	record, err := f.svc.CheckIn(context.Background(), checkInActor(), attendance.CheckInRequest{
		Latitude:  officeLat,
		Longitude: officeLng,
	})
	require.NoError(t, err)

	assert.True(t, record.IsLate)
	assert.Equal(t, attendance.SeverityFullDay, record.LateSeverity)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)

	req := attendance.CheckInRequest{Latitude: officeLat, Longitude: officeLng}
	_, err := f.svc.CheckIn(context.Background(), checkInActor(), req)
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), checkInActor(), req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, f.records.Records, 1)
}

func TestCheckInRejectsUnknownRemoteMode(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)

	_, err := f.svc.CheckIn(context.Background(), checkInActor(), attendance.CheckInRequest{
		Latitude:   officeLat,
		Longitude:  officeLng,
		RemoteMode: "moon_base",
	})

	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func remoteRecord(f *attendanceFixture) attendance.Record {
	pending := attendance.RemoteStatusPending
	managerID := "mgr-1"
	record := attendance.Record{
		ID:           "att-1",
		EmployeeID:   "emp-1",
		Day:          time.Now().UTC().Truncate(24 * time.Hour),
		IsWFH:        true,
		RemoteStatus: &pending,
		ManagerID:    &managerID,
	}
	f.records.Records[record.ID] = record
	return record
}

func TestApproveRemote(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)
	record := remoteRecord(f)

	manager := employee.Actor{ID: "mgr-1", Role: employee.RoleManager}
	updated, err := f.svc.ApproveRemote(context.Background(), manager, record.ID)
	require.NoError(t, err)

	require.NotNil(t, updated.RemoteStatus)
	assert.Equal(t, attendance.RemoteStatusApproved, *updated.RemoteStatus)
	require.NotNil(t, updated.ProcessedBy)
	assert.Equal(t, "mgr-1", *updated.ProcessedBy)
}

func TestRejectRemoteRequiresReason(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)
	record := remoteRecord(f)

	manager := employee.Actor{ID: "mgr-1", Role: employee.RoleManager}
	_, err := f.svc.RejectRemote(context.Background(), manager, record.ID, " ")

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, attendance.RemoteStatusPending, *f.records.Records[record.ID].RemoteStatus)
}

func TestRemoteDecisionIsOneShot(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)
	record := remoteRecord(f)

	manager := employee.Actor{ID: "mgr-1", Role: employee.RoleManager}
	_, err := f.svc.ApproveRemote(context.Background(), manager, record.ID)
	require.NoError(t, err)

	_, err = f.svc.RejectRemote(context.Background(), manager, record.ID, "not agreed")
	assert.ErrorIs(t, err, attendance.ErrRemoteAlreadyProcessed)
}

func TestRemoteDecisionOnOfficeCheckIn(t *testing.T) {
	f := newAttendanceFixture(t, 1440, 1441)
	f.records.Records["att-2"] = attendance.Record{
		ID:         "att-2",
		EmployeeID: "emp-1",
		Day:        time.Now().UTC().Truncate(24 * time.Hour),
	}

	manager := employee.Actor{ID: "mgr-1", Role: employee.RoleManager}
	_, err := f.svc.ApproveRemote(context.Background(), manager, "att-2")
	assert.ErrorIs(t, err, attendance.ErrNotRemoteCheckIn)
}
