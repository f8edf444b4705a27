package leave

import "time"

type Type string

const (
	TypeCasual  Type = "CL"
	TypeSick    Type = "SL"
	TypeHalfDay Type = "HDL"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCasual, TypeSick, TypeHalfDay:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusEscalated Status = "Escalated"
	StatusCancelled Status = "Cancelled"
)

type Session string

const (
	SessionMorning   Session = "Morning"
	SessionAfternoon Session = "Afternoon"
)

// Request is a leave application. Requests are never deleted; cancellation
// and rejection are terminal statuses.
type Request struct {
	ID              string
	EmployeeID      string
	ManagerID       string
	Type            Type
	StartDate       time.Time
	EndDate         time.Time
	IsHalfDay       bool
	Session         *Session
	TotalDays       float64
	Reason          string
	DocumentURL     *string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	// Comment carries the manager's escalation note for the founder.
	Comment     *string
	CancelledBy *string
	CancelledAt *time.Time
	RequestedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PeriodSummary aggregates one employee's leave activity inside a payroll
// period.
type PeriodSummary struct {
	CasualApprovedDays   float64
	SickApprovedDays     float64
	HalfDayApprovedCount int
	PendingDays          float64
}
