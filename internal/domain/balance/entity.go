package balance

import "time"

// Entitlement defaults applied when a ledger record is first created.
const (
	DefaultCasualTotal  = 24
	DefaultSickTotal    = 12
	DefaultLateWarnings = 3
)

// Field names one mutable counter of a ledger record. Adjust accepts only
// these values; anything else is rejected before touching the store.
type Field string

const (
	FieldCasualBalance   Field = "cl_balance"
	FieldCasualUsedMonth Field = "cl_used_month"
	FieldSickBalance     Field = "sl_balance"
	FieldSickUsedMonth   Field = "sl_used_month"
	FieldHalfDayCount    Field = "hdl_count"
	FieldLateWarnings    Field = "late_warnings_left"
)

func (f Field) Valid() bool {
	switch f {
	case FieldCasualBalance, FieldCasualUsedMonth,
		FieldSickBalance, FieldSickUsedMonth,
		FieldHalfDayCount, FieldLateWarnings:
		return true
	}
	return false
}

// Record is one employee's leave and attendance ledger. Balances may go
// negative: the excess is recorded unpaid state the payroll engine settles,
// not an error.
type Record struct {
	EmployeeID       string
	CasualTotal      float64
	CasualBalance    float64
	CasualUsedMonth  float64
	SickTotal        float64
	SickBalance      float64
	SickUsedMonth    float64
	HalfDayCount     float64
	LateWarningsLeft float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewDefaultRecord returns the record a fresh employee starts the year with.
func NewDefaultRecord(employeeID string) Record {
	return Record{
		EmployeeID:       employeeID,
		CasualTotal:      DefaultCasualTotal,
		CasualBalance:    DefaultCasualTotal,
		SickTotal:        DefaultSickTotal,
		SickBalance:      DefaultSickTotal,
		LateWarningsLeft: DefaultLateWarnings,
	}
}
