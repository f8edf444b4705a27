package leave

import (
	"time"

	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

const (
	// CasualMinNoticeDays is the advance notice a casual leave needs.
	CasualMinNoticeDays = 2
	// CasualMaxDaysPerRequest caps a single casual application.
	CasualMaxDaysPerRequest = 4
	// SickMaxBackdateDays is how far back a sick leave may start.
	SickMaxBackdateDays = 7
	// SickDocRequiredAboveDays is the length past which a sick leave needs
	// a supporting document.
	SickDocRequiredAboveDays = 3

	// AutoApproveMaxDays caps both a single sick request and the monthly
	// sick total for the auto-approval fast path.
	AutoApproveMaxDays = 2
)

// TotalDays returns the chargeable length of a request: 0.5 for a half-day,
// otherwise inclusive calendar days between start and end.
func TotalDays(start, end time.Time, isHalfDay bool) float64 {
	if isHalfDay {
		return 0.5
	}
	days := end.Sub(start).Hours()/24 + 1
	return days
}

// ValidateRules applies the per-type leave policy to a parsed request.
// today must already be truncated to a date in the office timezone.
func ValidateRules(typ Type, start, end time.Time, totalDays float64, isHalfDay bool, session string, documentURL string, today time.Time) error {
	var errs validator.ValidationErrors

	if end.Before(start) {
		errs = errs.Add("end_date", "must not be before start_date")
	}
	if totalDays <= 0 {
		errs = errs.Add("total_days", "must be positive")
	}

	switch typ {
	case TypeCasual:
		notice := start.Sub(today).Hours() / 24
		if notice < CasualMinNoticeDays {
			errs = errs.Add("start_date", "casual leave needs at least 2 days notice")
		}
		if totalDays > CasualMaxDaysPerRequest {
			errs = errs.Add("end_date", "casual leave is capped at 4 days per application")
		}
		if isHalfDay {
			errs = errs.Add("is_half_day", "casual leave cannot be a half-day")
		}
	case TypeSick:
		backdate := today.Sub(start).Hours() / 24
		if backdate > SickMaxBackdateDays {
			errs = errs.Add("start_date", "sick leave can be backdated at most 7 days")
		}
		if totalDays > SickDocRequiredAboveDays && validator.IsEmpty(documentURL) {
			errs = errs.Add("document_url", "sick leave longer than 3 days needs a supporting document")
		}
		if isHalfDay {
			errs = errs.Add("is_half_day", "sick leave cannot be a half-day")
		}
	case TypeHalfDay:
		if !isHalfDay {
			errs = errs.Add("is_half_day", "half-day leave must be flagged as a half-day")
		}
		if validator.IsEmpty(session) {
			errs = errs.Add("session", "half-day leave needs a session")
		}
		if !start.Equal(end) {
			errs = errs.Add("end_date", "half-day leave covers a single day")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AutoApprovable reports whether a sick request qualifies for the
// no-manager fast path: short enough on its own, and short enough combined
// with what this month already consumed.
func AutoApprovable(typ Type, totalDays, sickUsedMonth float64) bool {
	if typ != TypeSick {
		return false
	}
	return totalDays <= AutoApproveMaxDays && sickUsedMonth+totalDays <= AutoApproveMaxDays
}
