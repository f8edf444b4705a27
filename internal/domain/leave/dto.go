package leave

import (
	"time"

	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Type        string `json:"type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsHalfDay   bool   `json:"is_half_day"`
	Session     string `json:"session,omitempty"`
	Reason      string `json:"reason"`
	DocumentURL string `json:"document_url,omitempty"`
}

// Validate checks the request shape; leave policy rules run afterwards in
// ValidateRules against the parsed values.
func (r CreateRequest) Validate() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	if !Type(r.Type).Valid() {
		errs = errs.Add("type", "must be one of CL, SL, HDL")
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = errs.Add("start_date", "must be a date in YYYY-MM-DD format")
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = errs.Add("end_date", "must be a date in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.Reason) {
		errs = errs.Add("reason", "is required")
	}
	if r.Session != "" && !validator.IsInSlice(r.Session, []string{string(SessionMorning), string(SessionAfternoon)}) {
		errs = errs.Add("session", "must be Morning or Afternoon")
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type DecisionRequest struct {
	Reason string `json:"reason"`
}
