package attendance

import "time"

// RemoteMode is the declarative alternative an employee picks when checking
// in outside the office geofence.
type RemoteMode string

const (
	RemoteModeWFH         RemoteMode = "wfh"
	RemoteModeOutOfOffice RemoteMode = "out_of_office"
)

func (m RemoteMode) Valid() bool {
	return m == RemoteModeWFH || m == RemoteModeOutOfOffice
}

type RemoteStatus string

const (
	RemoteStatusPending  RemoteStatus = "pending"
	RemoteStatusApproved RemoteStatus = "approved"
	RemoteStatusRejected RemoteStatus = "rejected"
)

// Severity levels a late arrival can carry. Zero means on time (possibly
// because a warning token absorbed the lateness).
const (
	SeverityNone    = 0.0
	SeverityHalfDay = 0.5
	SeverityFullDay = 1.0
)

// Record is one employee's check-in for one calendar day.
type Record struct {
	ID            string
	EmployeeID    string
	CheckinAt     time.Time
	Day           time.Time
	Latitude      float64
	Longitude     float64
	IsWFH         bool
	IsOutOfOffice bool
	IsLate        bool
	LateSeverity  float64
	// RemoteStatus is nil for in-office check-ins.
	RemoteStatus *RemoteStatus
	// ManagerID is the approver-to-be for a remote check-in.
	ManagerID   *string
	ProcessedBy *string
	ProcessedAt *time.Time
	Comment     *string
	CreatedAt   time.Time
}
